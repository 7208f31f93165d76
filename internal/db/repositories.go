package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Plans    *PlanRepository
	Accesses *AccessRepository
	Invites  *InviteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Plans:    NewPlanRepository(database),
		Accesses: NewAccessRepository(database),
		Invites:  NewInviteRepository(database),
	}
}
