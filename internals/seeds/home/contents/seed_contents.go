package contents

import (
	"log/slog"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mwit_alumni_backend/internals/features/home/contents/model"
)

type ContentSeed struct {
	Key       string         `json:"key"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      datatypes.JSON `json:"data"`
	SortOrder int            `json:"sort_order"`
}

// SeedContents creates the default page blocks; keys already present are kept.
func SeedContents(db *gorm.DB, raw []byte) error {
	var inputs []ContentSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return err
	}
	for _, in := range inputs {
		block := model.ContentBlock{
			Key:       in.Key,
			Title:     in.Title,
			Body:      in.Body,
			Data:      in.Data,
			SortOrder: in.SortOrder,
			IsActive:  true,
		}
		res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).Create(&block)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			slog.Info("seed: content block created", "key", in.Key)
		}
	}
	return nil
}
