package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"campus/internal/departments"
	"campus/internal/faculty"
	"campus/internal/shared/config"
	"campus/internal/shared/constants"
	"campus/internal/shared/database"
	"campus/internal/students"
	"campus/internal/users"
	"campus/pkg/cache"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Campus Database Seeder...")

	cfg := config.MustLoad()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order and
// drops any cached reads pointing at the truncated rows.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"students",
		"faculties",
		"users",
		"departments",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	ctx := context.Background()
	cacheSvc := cache.NewService(s.db.GetRedisClient())
	for _, pattern := range []string{
		constants.PATTERN_INVALIDATE_DEPARTMENTS,
		constants.PATTERN_INVALIDATE_USER_ALL,
	} {
		if err := cacheSvc.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to flush cache pattern %s: %w", pattern, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	depts, err := s.seedDepartments()
	if err != nil {
		return err
	}

	if err := s.seedAdmin(); err != nil {
		return err
	}

	if err := s.seedAccounts(depts); err != nil {
		return err
	}

	return nil
}

func (s *Seeder) seedDepartments() ([]departments.Department, error) {
	depts := []departments.Department{
		{Name: "Computer Engineering", Code: "CENG", FacultyName: "Faculty of Engineering"},
		{Name: "Electrical Engineering", Code: "EE", FacultyName: "Faculty of Engineering"},
		{Name: "Mechanical Engineering", Code: "ME", FacultyName: "Faculty of Engineering"},
		{Name: "Mathematics", Code: "MATH", FacultyName: "Faculty of Science"},
		{Name: "Physics", Code: "PHYS", FacultyName: "Faculty of Science"},
		{Name: "Business Administration", Code: "BA", FacultyName: "Faculty of Economics"},
	}

	for i := range depts {
		if err := s.db.GetPostgreSQL().Create(&depts[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create department %s: %w", depts[i].Code, err)
		}
	}

	fmt.Printf("   • %d departments created\n", len(depts))
	return depts, nil
}

func (s *Seeder) seedAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := users.User{
		Email:      "admin@campus.edu",
		Password:   string(hash),
		Role:       users.RoleAdmin,
		FirstName:  "System",
		LastName:   "Administrator",
		NationalID: "10000000001",
		IsVerified: true,
	}

	if err := s.db.GetPostgreSQL().Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	fmt.Println("   • admin account created (admin@campus.edu / Admin1234)")
	return nil
}

func (s *Seeder) seedAccounts(depts []departments.Department) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Test1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	student := users.User{
		Email:      "student@campus.edu",
		Password:   string(hash),
		Role:       users.RoleStudent,
		FirstName:  "Ada",
		LastName:   "Yildiz",
		NationalID: "10000000002",
		Gender:     "female",
		IsVerified: true,
	}
	if err := s.db.GetPostgreSQL().Create(&student).Error; err != nil {
		return fmt.Errorf("failed to create student account: %w", err)
	}
	studentRecord := students.Student{
		UserID:          student.ID,
		DepartmentID:    depts[0].ID,
		StudentNumber:   "S2026000001",
		GPA:             3.4,
		CGPA:            3.2,
		CurrentSemester: 3,
	}
	if err := s.db.GetPostgreSQL().Create(&studentRecord).Error; err != nil {
		return fmt.Errorf("failed to create student record: %w", err)
	}

	member := users.User{
		Email:      "faculty@campus.edu",
		Password:   string(hash),
		Role:       users.RoleFaculty,
		FirstName:  "Mehmet",
		LastName:   "Demir",
		NationalID: "10000000003",
		Gender:     "male",
		IsVerified: true,
	}
	if err := s.db.GetPostgreSQL().Create(&member).Error; err != nil {
		return fmt.Errorf("failed to create faculty account: %w", err)
	}
	facultyRecord := faculty.Faculty{
		UserID:         member.ID,
		DepartmentID:   depts[0].ID,
		EmployeeNumber: "F2026000001",
		Title:          "Assoc. Prof. Dr.",
		OfficeLocation: "B-204",
		Specialization: "Distributed Systems",
		HireDate:       time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		Status:         faculty.StatusActive,
	}
	if err := s.db.GetPostgreSQL().Create(&facultyRecord).Error; err != nil {
		return fmt.Errorf("failed to create faculty record: %w", err)
	}

	fmt.Println("   • sample student and faculty accounts created (password Test1234)")
	return nil
}
