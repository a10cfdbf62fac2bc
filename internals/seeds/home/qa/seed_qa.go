package qa

import (
	"log/slog"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/qa/model"
)

type QASeed struct {
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Category  *string `json:"category"`
	SortOrder int     `json:"sort_order"`
}

// SeedQA only runs on an empty table.
func SeedQA(db *gorm.DB, raw []byte) error {
	var n int64
	if err := db.Model(&model.QAItem{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var inputs []QASeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return err
	}
	items := make([]model.QAItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, model.QAItem{
			Question:    in.Question,
			Answer:      in.Answer,
			Category:    in.Category,
			SortOrder:   in.SortOrder,
			IsPublished: true,
		})
	}
	if len(items) == 0 {
		return nil
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	slog.Info("seed: qa items created", "count", len(items))
	return nil
}
