package services

import (
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
)

// ServiceProvider bundles every service handed to the handlers. Resolver is
// exposed so handlers can identify the calling character from the session
// header.
type ServiceProvider struct {
	AccountSvc portssvc.AccountSvcFacade
	EconomySvc portssvc.EconomySvcFacade
	Resolver   portssvc.CharacterResolver
}

// NewServiceProvider wires the services over the repositories and the default
// collaborators. cash may be any CashInventory implementation.
func NewServiceProvider(repos portsrepo.RepositoryProvider, cash portssvc.CashInventory) ServiceProvider {
	resolver := NewCharacterResolver(repos.CharacterRepo)
	authorizer := NewRoleAuthorizer()

	return ServiceProvider{
		AccountSvc: NewAccountService(repos.AccountRepo, repos.LedgerRepo),
		EconomySvc: NewEconomyService(repos.AccountRepo, repos.LedgerRepo, resolver, authorizer, cash),
		Resolver:   resolver,
	}
}
