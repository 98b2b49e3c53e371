package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Cycles   *CycleRepository
	Symptoms *SymptomRepository
	Garden   *GardenRepository
	Wellness *WellnessRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Cycles:   NewCycleRepository(database),
		Symptoms: NewSymptomRepository(database),
		Garden:   NewGardenRepository(database),
		Wellness: NewWellnessRepository(database),
	}
}
