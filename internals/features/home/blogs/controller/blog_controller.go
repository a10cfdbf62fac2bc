package controller

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/home/blogs/dto"
	"mwit_alumni_backend/internals/features/home/blogs/model"
	"mwit_alumni_backend/internals/features/home/blogs/service"
	helper "mwit_alumni_backend/internals/helpers"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
)

const (
	msgPostNotFound = "ไม่พบบทความ"
	msgSlugTaken    = "slug นี้ถูกใช้แล้ว กรุณาเปลี่ยนใหม่"
	msgBadStatus    = "สถานะบทความไม่ถูกต้อง"
	coverDir        = "blog/covers"
)

type BlogController struct {
	DB       *gorm.DB
	Uploader helperOSS.Uploader
}

func NewBlogController(db *gorm.DB, up helperOSS.Uploader) *BlogController {
	return &BlogController{DB: db, Uploader: up}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("blog_image_sort_order ASC")
}

func (ctrl *BlogController) list(c *fiber.Ctx, publishedOnly bool) error {
	p := helper.ParseFiber(c, "published_at", "desc", helper.DefaultOpts)
	order, _ := p.OrderClause(map[string]string{
		"published_at": "blog_post_published_at",
		"created_at":   "created_at",
		"title":        "blog_post_title",
	}, "published_at")

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.BlogPost{})
	if publishedOnly {
		q = q.Where("blog_post_status = ?", constants.BlogPublished)
	} else if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		if !model.IsValidBlogStatus(s) {
			return helper.JsonError(c, fiber.StatusBadRequest, msgBadStatus)
		}
		q = q.Where("blog_post_status = ?", s)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(blog_post_title) LIKE ? OR LOWER(blog_post_excerpt) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var list []model.BlogPost
	if err := q.Preload("Images", orderedImages).
		Order(order).Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", list, p.Pagination(total, len(list)))
}

// GET /api/blog
func (ctrl *BlogController) PublicList(c *fiber.Ctx) error { return ctrl.list(c, true) }

// GET /api/blog/admin/list?status=
func (ctrl *BlogController) AdminList(c *fiber.Ctx) error { return ctrl.list(c, false) }

// GET /api/blog/:idOrSlug (published only)
func (ctrl *BlogController) PublicGet(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("idOrSlug"))
	q := ctrl.DB.WithContext(c.UserContext()).
		Preload("Images", orderedImages).
		Where("blog_post_status = ?", constants.BlogPublished)
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("blog_post_id = ?", id)
	} else {
		q = q.Where("LOWER(blog_post_slug) = ?", strings.ToLower(key))
	}

	var post model.BlogPost
	if err := q.Take(&post).Error; err != nil {
		return helper.FromDBError(c, err, msgPostNotFound, "")
	}
	return helper.JsonOK(c, "ok", post)
}

func (ctrl *BlogController) uploadCover(c *fiber.Ctx) (*string, error) {
	fh := helperOSS.FormImage(c, "cover", "blog_post_cover_image")
	if fh == nil {
		return nil, nil
	}
	if ctrl.Uploader == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, constants.MsgStorageUnavailable)
	}
	url, err := ctrl.Uploader.UploadAsWebP(c.UserContext(), fh, coverDir)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// POST /api/blog (JSON or multipart with "cover")
func (ctrl *BlogController) Create(c *fiber.Ctx) error {
	var body dto.CreateBlogPostRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	cover, err := ctrl.uploadCover(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if cover == nil {
		cover = body.CoverImageURL
	}

	ctx := c.UserContext()
	base := body.Title
	if body.Slug != nil {
		base = *body.Slug
	}
	slug, err := service.UniqueSlug(ctx, ctrl.DB, base, nil)
	if err != nil {
		return helper.FromError(c, err)
	}

	post := model.BlogPost{
		BlogPostTitle:         body.Title,
		BlogPostSlug:          slug,
		BlogPostExcerpt:       body.Excerpt,
		BlogPostContent:       body.Content,
		BlogPostCoverImageURL: cover,
		BlogPostAuthorID:      helper.GetOptionalUserID(c),
	}
	status := body.Status
	if status == "" {
		status = constants.BlogDraft
	}
	service.SetStatus(&post, status, time.Now())

	if err := ctrl.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return helper.FromDBError(c, err, "", msgSlugTaken)
	}
	post.Images = []model.BlogImage{}
	return helper.JsonCreated(c, "สร้างบทความเรียบร้อย", post)
}

// PUT /api/blog/:id
func (ctrl *BlogController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateBlogPostRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.Normalize()
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	newCover, err := ctrl.uploadCover(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if newCover == nil {
		newCover = body.CoverImageURL
	}

	ctx := c.UserContext()
	var post model.BlogPost
	var oldCover string
	err = ctrl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "blog_post_id = ?", id).Error; err != nil {
			return err
		}
		if body.Title != nil {
			post.BlogPostTitle = *body.Title
		}
		if body.Excerpt != nil {
			post.BlogPostExcerpt = body.Excerpt
		}
		if body.Content != nil {
			post.BlogPostContent = *body.Content
		}
		if body.Slug != nil && !strings.EqualFold(*body.Slug, post.BlogPostSlug) {
			slug, err := service.UniqueSlug(ctx, tx, *body.Slug, &post.BlogPostID)
			if err != nil {
				return err
			}
			post.BlogPostSlug = slug
		}
		switch {
		case newCover != nil && (post.BlogPostCoverImageURL == nil || *post.BlogPostCoverImageURL != *newCover):
			if post.BlogPostCoverImageURL != nil {
				oldCover = *post.BlogPostCoverImageURL
			}
			post.BlogPostCoverImageURL = newCover
		case body.RemoveCover && post.BlogPostCoverImageURL != nil:
			oldCover = *post.BlogPostCoverImageURL
			post.BlogPostCoverImageURL = nil
		}
		if body.Status != nil {
			service.SetStatus(&post, *body.Status, time.Now())
		}
		post.Images = nil
		if err := tx.Omit("Images").Save(&post).Error; err != nil {
			return err
		}
		return tx.Preload("Images", orderedImages).First(&post, "blog_post_id = ?", id).Error
	})
	if err != nil {
		return helper.FromDBError(c, err, msgPostNotFound, msgSlugTaken)
	}

	helperOSS.TrashAsync(ctrl.Uploader, oldCover)
	return helper.JsonUpdated(c, "แก้ไขบทความเรียบร้อย", post)
}

// PUT /api/blog/:id/images
func (ctrl *BlogController) ReplaceImages(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.ReplaceImagesRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	images := make([]model.BlogImage, 0, len(body.Images))
	for _, in := range body.Images {
		images = append(images, model.BlogImage{
			BlogImageURL:     strings.TrimSpace(in.ImageURL),
			BlogImageCaption: in.Caption,
		})
	}

	ctx := c.UserContext()
	var post model.BlogPost
	var dropped []string
	err = ctrl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "blog_post_id = ?", id).Error; err != nil {
			return err
		}
		var err error
		dropped, err = service.ReplaceImages(ctx, tx, id, images)
		if err != nil {
			return err
		}
		return tx.Preload("Images", orderedImages).First(&post, "blog_post_id = ?", id).Error
	})
	if err != nil {
		return helper.FromDBError(c, err, msgPostNotFound, "")
	}

	helperOSS.TrashAsync(ctrl.Uploader, dropped...)
	return helper.JsonUpdated(c, "บันทึกรูปภาพเรียบร้อย", post)
}

// DELETE /api/blog/:id
func (ctrl *BlogController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var post model.BlogPost
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Images").First(&post, "blog_post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_image_post_id = ?", id).Delete(&model.BlogImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BlogPost{}, "blog_post_id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, msgPostNotFound)
	}
	if err != nil {
		return helper.FromError(c, err)
	}

	urls := make([]string, 0, len(post.Images)+1)
	if post.BlogPostCoverImageURL != nil {
		urls = append(urls, *post.BlogPostCoverImageURL)
	}
	for _, img := range post.Images {
		urls = append(urls, img.BlogImageURL)
	}
	helperOSS.TrashAsync(ctrl.Uploader, urls...)

	slog.InfoContext(c.UserContext(), "blog post deleted", "blog_post_id", id, "slug", post.BlogPostSlug)
	return helper.JsonDeleted(c, "ลบบทความเรียบร้อย", fiber.Map{"blog_post_id": id})
}
