// Package seed provisions demo accounts and courses on first startup.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/auth"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

const (
	adminEmail    = "admin@test.com"
	seedPassword  = "password123"
	adminName     = "Admin User"
	seedAvatarFmt = "https://i.pravatar.cc/150?img=%d"
)

type seedInstructor struct {
	name   string
	email  string
	mobile string
	bio    string
}

type seedLecture struct {
	title    string
	date     string
	duration int
}

type seedCourse struct {
	name        string
	level       models.CourseLevel
	description string
	imageURL    string
	lectures    []seedLecture
}

var instructors = []seedInstructor{
	{"John Doe", "instructor1@test.com", "+1234567890", "Experienced instructor in web development"},
	{"Jane Smith", "instructor2@test.com", "+1234567891", "Specialized in mobile app development"},
	{"Robert Johnson", "instructor3@test.com", "+1234567892", "Database and backend expert"},
	{"Emily Davis", "instructor4@test.com", "+1234567893", "Frontend and UI/UX specialist"},
	{"Michael Wilson", "instructor5@test.com", "+1234567894", "Cloud computing and DevOps"},
}

var courses = []seedCourse{
	{
		name:        "Web Development Fundamentals",
		level:       models.LevelBeginner,
		description: "Learn the basics of HTML, CSS, and JavaScript",
		imageURL:    "https://picsum.photos/seed/web1/400/225",
		lectures: []seedLecture{
			{"Introduction to HTML", "2025-01-15", 60},
			{"CSS Basics", "2025-01-16", 60},
			{"JavaScript Fundamentals", "2025-01-17", 90},
		},
	},
	{
		name:        "Advanced React Development",
		level:       models.LevelAdvanced,
		description: "Master React with hooks, context, and advanced patterns",
		imageURL:    "https://picsum.photos/seed/react1/400/225",
		lectures: []seedLecture{
			{"React Hooks Deep Dive", "2025-01-18", 120},
			{"Context API and State Management", "2025-01-19", 90},
			{"Performance Optimization", "2025-01-20", 90},
		},
	},
	{
		name:        "Node.js Backend Development",
		level:       models.LevelIntermediate,
		description: "Build scalable backend applications with Node.js and Express",
		imageURL:    "https://picsum.photos/seed/node1/400/225",
		lectures: []seedLecture{
			{"Express.js Setup", "2025-01-21", 60},
			{"RESTful APIs", "2025-01-22", 90},
			{"Database Integration", "2025-01-23", 120},
		},
	},
	{
		name:        "MongoDB Database Design",
		level:       models.LevelIntermediate,
		description: "Learn NoSQL database design with MongoDB",
		imageURL:    "https://picsum.photos/seed/mongo1/400/225",
		lectures: []seedLecture{
			{"MongoDB Basics", "2025-01-24", 60},
			{"Schema Design", "2025-01-25", 90},
			{"Aggregation Framework", "2025-01-26", 90},
		},
	},
	{
		name:        "Full Stack Development",
		level:       models.LevelAdvanced,
		description: "Complete full stack development with MERN stack",
		imageURL:    "https://picsum.photos/seed/mern1/400/225",
		lectures: []seedLecture{
			{"MERN Stack Overview", "2025-01-27", 60},
			{"Building REST APIs", "2025-01-28", 120},
			{"Authentication & Authorization", "2025-01-29", 90},
		},
	},
}

// Run seeds the demo admin, instructors and courses. It is idempotent: if the
// admin account already exists, nothing is touched.
func Run(ctx context.Context, repos *repositories.Repositories) error {
	exists, err := repos.UserRepository.EmailExists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for existing seed data: %w", err)
	}
	if exists {
		logger.Debug().Msg("Seed data already present, skipping")
		return nil
	}

	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &models.User{
		Email:    adminEmail,
		Password: hashed,
		Name:     adminName,
		RoleType: models.RoleAdmin,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	for i, ins := range instructors {
		mobile := ins.mobile
		bio := ins.bio
		avatar := fmt.Sprintf(seedAvatarFmt, i+1)
		user := &models.User{
			Email:     ins.email,
			Password:  hashed,
			Name:      ins.name,
			RoleType:  models.RoleInstructor,
			Mobile:    &mobile,
			Bio:       &bio,
			AvatarURL: &avatar,
		}
		if err := repos.UserRepository.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create instructor %s: %w", ins.email, err)
		}
	}

	for _, sc := range courses {
		course := &models.Course{
			Name:        sc.name,
			Level:       sc.level,
			Description: sc.description,
			ImageURL:    sc.imageURL,
		}
		if err := repos.CourseRepository.Create(ctx, course); err != nil {
			return fmt.Errorf("failed to create course %s: %w", sc.name, err)
		}

		for _, sl := range sc.lectures {
			date, err := time.Parse("2006-01-02", sl.date)
			if err != nil {
				return fmt.Errorf("invalid seed lecture date %s: %w", sl.date, err)
			}
			lecture := &models.Lecture{
				CourseID:        course.ID,
				Title:           sl.title,
				Date:            date,
				DurationMinutes: sl.duration,
				Instructor:      models.Unassigned(),
			}
			if err := repos.CourseRepository.AddLecture(ctx, lecture); err != nil {
				return fmt.Errorf("failed to create lecture %s: %w", sl.title, err)
			}
		}
	}

	logger.Info().
		Int("instructors", len(instructors)).
		Int("courses", len(courses)).
		Msg("Database seeded with demo data")
	return nil
}
