package seeds

import (
	_ "embed"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	contents "mwit_alumni_backend/internals/seeds/home/contents"
	qa "mwit_alumni_backend/internals/seeds/home/qa"
	users "mwit_alumni_backend/internals/seeds/users/auth"
)

var (
	//go:embed users/auth/data_users.json
	dataUsers []byte
	//go:embed home/contents/data_contents.json
	dataContents []byte
	//go:embed home/qa/data_qa.json
	dataQA []byte
)

// RunAllSeeds is idempotent; every seeder skips rows that already exist.
func RunAllSeeds(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB, []byte) error
		data []byte
	}{
		{"users", users.SeedUsers, dataUsers},
		{"contents", contents.SeedContents, dataContents},
		{"qa", qa.SeedQA, dataQA},
	}
	for _, s := range steps {
		if err := s.run(db, s.data); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
	}
	slog.Info("seeding done")
	return nil
}
