package providers

import (
	"github.com/samber/do/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/auth"
	"github.com/wayfarerapp/wayfarer-server/internal/logger"
	"github.com/wayfarerapp/wayfarer-server/internal/service"
	"github.com/wayfarerapp/wayfarer-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, validator, log.Logger), nil
}

// ProvidePlanService provides the travel plan service.
func ProvidePlanService(i do.Injector) (*service.PlanService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlanService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideJoinService provides the join request service.
func ProvideJoinService(i do.Injector) (*service.JoinService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewJoinService(storeHandle.Store, log.Logger), nil
}
