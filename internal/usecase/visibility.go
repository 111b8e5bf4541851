package usecase

import "go-application-tracker/internal/domain"

// visibilityFor is the single role-visibility policy. Every listing,
// fetch and stats path derives its repository filter from here so the
// scoping rules live in exactly one place.
//
//	applicant: own applications only
//	bot:       technical-role applications, any status
//	admin:     unrestricted
func visibilityFor(actor *domain.User) domain.ApplicationFilter {
	switch actor.Role {
	case domain.RoleApplicant:
		id := actor.ID
		return domain.ApplicationFilter{ApplicantID: &id}
	case domain.RoleBot:
		return domain.ApplicationFilter{TechnicalOnly: true}
	default:
		return domain.ApplicationFilter{}
	}
}

// canSee applies the same policy to a single already-loaded application.
func canSee(actor *domain.User, app *domain.Application) bool {
	switch actor.Role {
	case domain.RoleApplicant:
		return app.ApplicantID == actor.ID
	case domain.RoleBot:
		return app.JobRoleType != nil && *app.JobRoleType == domain.RoleTypeTechnical
	default:
		return true
	}
}
