package config

import (
	"log"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
// This is for development only. Production data comes through the API.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSampleData(); err != nil {
		log.Printf("⚠️ Sample data seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedSampleData() error {
	var count int64
	s.db.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	hashed, err := password.Hash("password123")
	if err != nil {
		return err
	}

	employees := []*models.Employee{
		{
			Email:          "alice.manager@example.com",
			Password:       hashed,
			FirstName:      "Alice",
			LastName:       "Green",
			Role:           models.RoleManager,
			EmploymentType: models.EmploymentFullTime,
			Skills:         []string{"leadership", "scheduling", "conflict-resolution"},
			Location:       "Dhaka Office",
			Team:           "Operations",
			Availability: []models.AvailabilityWindow{
				{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
				{DayOfWeek: 2, StartTime: "08:00", EndTime: "17:00"},
				{DayOfWeek: 3, StartTime: "08:00", EndTime: "17:00"},
				{DayOfWeek: 4, StartTime: "08:00", EndTime: "17:00"},
				{DayOfWeek: 5, StartTime: "08:00", EndTime: "17:00"},
			},
		},
		{
			Email:          "bob.parttime@example.com",
			Password:       hashed,
			FirstName:      "Bob",
			LastName:       "Khan",
			Role:           models.RoleEngineer,
			EmploymentType: models.EmploymentPartTime,
			Skills:         []string{"javascript", "react", "testing"},
			Location:       "Chittagong Office",
			Team:           "Platform",
			Availability: []models.AvailabilityWindow{
				{DayOfWeek: 1, StartTime: "17:00", EndTime: "22:00"},
				{DayOfWeek: 3, StartTime: "17:00", EndTime: "22:00"},
				{DayOfWeek: 5, StartTime: "17:00", EndTime: "22:00"},
			},
		},
		{
			Email:          "charlie.devops@example.com",
			Password:       hashed,
			FirstName:      "Charlie",
			LastName:       "Rahman",
			Role:           models.RoleDevOps,
			EmploymentType: models.EmploymentFullTime,
			Skills:         []string{"aws", "kubernetes", "ci/cd"},
			Location:       "Dhaka Office",
			Team:           "Infra",
			Availability: []models.AvailabilityWindow{
				{DayOfWeek: 0, StartTime: "08:00", EndTime: "23:59"},
				{DayOfWeek: 1, StartTime: "08:00", EndTime: "23:59"},
				{DayOfWeek: 2, StartTime: "08:00", EndTime: "06:00"},
				{DayOfWeek: 3, StartTime: "08:00", EndTime: "23:59"},
				{DayOfWeek: 4, StartTime: "08:00", EndTime: "23:59"},
				{DayOfWeek: 5, StartTime: "08:00", EndTime: "23:59"},
			},
		},
		{
			Email:          "diana.senior@example.com",
			Password:       hashed,
			FirstName:      "Diana",
			LastName:       "Sarker",
			Role:           models.RoleSeniorEngineer,
			EmploymentType: models.EmploymentFullTime,
			Skills:         []string{"node", "design", "mentoring"},
			Location:       "Remote",
			Team:           "Platform",
			Availability: []models.AvailabilityWindow{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
				{DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00"},
				{DayOfWeek: 3, StartTime: "09:00", EndTime: "18:00"},
			},
		},
		{
			Email:          "eve.hr@example.com",
			Password:       hashed,
			FirstName:      "Eve",
			LastName:       "Ahmed",
			Role:           models.RoleHR,
			EmploymentType: models.EmploymentPartTime,
			Skills:         []string{"recruiting"},
			Location:       "Dhaka Office",
			Team:           "People",
			Availability: []models.AvailabilityWindow{
				{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
				{DayOfWeek: 4, StartTime: "13:00", EndTime: "17:00"},
			},
		},
	}

	for _, e := range employees {
		if err := s.db.Create(e).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d employees", len(employees))

	byEmail := make(map[string]*models.Employee, len(employees))
	for _, e := range employees {
		byEmail[e.Email] = e
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	addDays := func(days int) time.Time { return today.AddDate(0, 0, days) }

	timeOffs := []*models.TimeOff{
		{
			EmployeeID: byEmail["diana.senior@example.com"].ID,
			StartDate:  addDays(2),
			EndDate:    addDays(2),
			Status:     models.TimeOffApproved,
		},
		{
			EmployeeID: byEmail["alice.manager@example.com"].ID,
			StartDate:  addDays(7),
			EndDate:    addDays(9),
			Status:     models.TimeOffPending,
		},
		{
			EmployeeID: byEmail["bob.parttime@example.com"].ID,
			StartDate:  addDays(3),
			EndDate:    addDays(4),
			Status:     models.TimeOffApproved,
		},
		{
			EmployeeID: byEmail["eve.hr@example.com"].ID,
			StartDate:  addDays(1),
			EndDate:    addDays(1),
			Status:     models.TimeOffRejected,
		},
	}
	for _, t := range timeOffs {
		if err := s.db.Create(t).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d time-off requests", len(timeOffs))

	shifts := []*models.Shift{
		{
			Date:              addDays(2),
			StartTime:         "09:00",
			EndTime:           "17:00",
			Roles:             []models.Role{models.RoleManager, models.RoleSeniorEngineer},
			SkillsRequired:    []string{"scheduling"},
			Location:          "Dhaka Office",
			Team:              "Operations",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["alice.manager@example.com"]},
		},
		{
			Date:              addDays(3),
			StartTime:         "18:00",
			EndTime:           "22:00",
			Roles:             []models.Role{models.RoleEngineer},
			SkillsRequired:    []string{"javascript"},
			Location:          "Chittagong Office",
			Team:              "Platform",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["bob.parttime@example.com"]},
		},
		{
			Date:           addDays(4),
			StartTime:      "22:00",
			EndTime:        "06:00",
			Roles:          []models.Role{models.RoleDevOps},
			SkillsRequired: []string{"kubernetes"},
			Location:       "Dhaka Office",
			Team:           "Infra",
			Status:         models.ShiftOpen,
		},
		{
			Date:              addDays(2),
			StartTime:         "08:00",
			EndTime:           "12:00",
			Roles:             []models.Role{models.RoleSeniorEngineer},
			SkillsRequired:    []string{"node"},
			Location:          "Remote",
			Team:              "Platform",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["diana.senior@example.com"]},
		},
		{
			Date:           addDays(2),
			StartTime:      "13:00",
			EndTime:        "17:00",
			Roles:          []models.Role{models.RoleSeniorEngineer},
			SkillsRequired: []string{"design"},
			Location:       "Remote",
			Team:           "Platform",
			Status:         models.ShiftOpen,
		},
		{
			Date:              addDays(5),
			StartTime:         "09:00",
			EndTime:           "17:00",
			Roles:             []models.Role{models.RoleManager, models.RoleEngineer},
			SkillsRequired:    []string{"scheduling", "javascript"},
			Location:          "Dhaka Office",
			Team:              "Operations",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["alice.manager@example.com"]},
		},
		{
			Date:              addDays(1),
			StartTime:         "09:00",
			EndTime:           "12:00",
			Roles:             []models.Role{models.RoleHR},
			SkillsRequired:    []string{"recruiting"},
			Location:          "Dhaka Office",
			Team:              "People",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["eve.hr@example.com"]},
		},
		{
			Date:              addDays(3),
			StartTime:         "19:00",
			EndTime:           "21:00",
			Roles:             []models.Role{models.RoleEngineer},
			SkillsRequired:    []string{"javascript"},
			Location:          "Chittagong Office",
			Team:              "Platform",
			Status:            models.ShiftOpen,
			AssignedEmployees: []models.Employee{*byEmail["bob.parttime@example.com"]},
		},
	}
	for _, sh := range shifts {
		if err := s.db.Create(sh).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d shifts", len(shifts))

	return nil
}
