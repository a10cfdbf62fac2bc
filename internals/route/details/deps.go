package details

import (
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	contentService "mwit_alumni_backend/internals/features/home/contents/service"
	authService "mwit_alumni_backend/internals/features/users/auth/service"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

// Deps holds the collaborators built once in main and shared by every feature.
// Uploader may be nil when object storage is not configured.
type Deps struct {
	Guards    authMw.Guards
	Stats     *statsService.StatsService
	Content   *contentService.PublicContent
	Uploader  helperOSS.Uploader
	Publisher helperEvents.Publisher
	Turnstile helperTurnstile.Verifier
	Identity  authService.IdentityVerifier
}
