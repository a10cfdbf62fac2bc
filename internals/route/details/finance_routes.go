package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donationRoute "mwit_alumni_backend/internals/features/donations/donations/route"
	expenseRoute "mwit_alumni_backend/internals/features/finance/expenses/route"
	statsRoute "mwit_alumni_backend/internals/features/finance/stats/route"
)

// FinanceRoutes: donations, the income/outcome ledger and the yearly rollup.
func FinanceRoutes(api fiber.Router, db *gorm.DB, d Deps) {
	donationRoute.DonationRoutes(api, db, d.Guards, donationRoute.Deps{
		Stats:     d.Stats,
		Uploader:  d.Uploader,
		Publisher: d.Publisher,
		Turnstile: d.Turnstile,
	})
	expenseRoute.ExpenseRoutes(api, db, d.Guards, d.Stats)
	statsRoute.StatsRoutes(api, db, d.Guards, d.Stats)
}
