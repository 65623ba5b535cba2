package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/config"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/database"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type subjectSeed struct {
	Name        string
	Code        string
	Description string
	GradeLevel  int
}

type contentSeed struct {
	SubjectCode     string
	Title           string
	ContentType     string
	Description     string
	ContentBody     string
	DifficultyLevel string
	DurationMinutes int
}

type badgeSeed struct {
	Name        string
	Description string
	Icon        string
	Criteria    string
	Points      int
}

type studentSeed struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	DateOfBirth models.Date
	Gender      string
	GradeLevel  int
}

var subjects = []subjectSeed{
	{"Mathematics - Algebra", "MATH-ALG-9", "Fundamental algebra concepts for 9th grade", 9},
	{"Science - Biology", "SCI-BIO-9", "Introduction to biology and life sciences", 9},
	{"English Literature", "ENG-LIT-9", "Literary analysis and writing skills", 9},
}

var contentItems = []contentSeed{
	{"MATH-ALG-9", "Introduction to Variables", "lesson", "Learn what variables are and how to use them in algebra",
		"A variable is a symbol (usually a letter) that represents an unknown value...", "beginner", 30},
	{"MATH-ALG-9", "Solving Linear Equations", "video", "Step-by-step guide to solving linear equations",
		"Video content: How to isolate variables and solve for x...", "beginner", 45},
	{"MATH-ALG-9", "Practice: Linear Equations", "exercise", "Practice problems for linear equations",
		"Solve the following equations: 1) 2x + 5 = 13, 2) 3x - 7 = 8...", "beginner", 20},
	{"MATH-ALG-9", "Graphing Linear Functions", "lesson", "Understanding how to graph lines on a coordinate plane",
		"A linear function can be graphed using slope-intercept form y = mx + b...", "intermediate", 40},
	{"MATH-ALG-9", "Quadratic Equations Introduction", "lesson", "Introduction to quadratic equations and their properties",
		"Quadratic equations are in the form ax² + bx + c = 0...", "advanced", 50},
	{"SCI-BIO-9", "Introduction to Cells", "lesson", "Basic cell structure and function",
		"Cells are the basic unit of life. They contain organelles...", "beginner", 35},
	{"SCI-BIO-9", "Photosynthesis Explained", "video", "How plants convert light energy into chemical energy",
		"Video: The process of photosynthesis involves chloroplasts...", "beginner", 30},
	{"SCI-BIO-9", "DNA and Genetics", "lesson", "Understanding genetic information and inheritance",
		"DNA is the hereditary material in organisms...", "intermediate", 45},
	{"ENG-LIT-9", "Essay Writing Basics", "lesson", "How to structure and write effective essays",
		"An essay consists of an introduction, body paragraphs, and conclusion...", "beginner", 40},
	{"ENG-LIT-9", "Poetry Analysis", "reading", "Techniques for analyzing poetry",
		"When analyzing poetry, consider literary devices, theme, tone...", "intermediate", 35},
}

var badges = []badgeSeed{
	{"First Steps", "Completed your first lesson", "🎯", "Complete 1 content item", 10},
	{"Knowledge Seeker", "Completed 5 lessons", "📚", "Complete 5 content items", 25},
	{"High Achiever", "Achieved 90%+ on an assessment", "⭐", "Score 90% or higher on any assessment", 50},
	{"Persistent Learner", "Logged in 5 days in a row", "🔥", "Login streak of 5 days", 30},
	{"Master of Mastery", "Achieved 100% mastery in a subject", "🏆", "Reach 100% mastery in any subject", 100},
}

var students = []studentSeed{
	{"Sarah", "Johnson", "sarah.johnson@student.lxp.com", "student123", models.NewDate(2010, 3, 15), "F", 9},
	{"Michael", "Chen", "michael.chen@student.lxp.com", "student123", models.NewDate(2010, 7, 22), "M", 9},
	{"Emma", "Davis", "emma.davis@student.lxp.com", "student123", models.NewDate(2010, 11, 8), "F", 9},
}

func main() {
	log.Println("Seeding database...")

	cfg := config.Load()
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}

	ctx := context.Background()

	subjectIDs := make(map[string]string)
	for _, s := range subjects {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO subjects (name, code, description, grade_level)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			s.Name, s.Code, s.Description, s.GradeLevel).Scan(&id)
		if err != nil {
			log.Fatalf("✗ Failed to seed subject %s: %v", s.Code, err)
		}
		subjectIDs[s.Code] = id
		log.Printf("  Seeded subject: %s", s.Name)
	}

	for _, c := range contentItems {
		_, err := pool.Exec(ctx, `
			INSERT INTO content (subject_id, title, content_type, description, content_body, difficulty_level, estimated_duration_minutes)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (SELECT 1 FROM content WHERE subject_id = $1 AND title = $2)`,
			subjectIDs[c.SubjectCode], c.Title, c.ContentType, c.Description, c.ContentBody, c.DifficultyLevel, c.DurationMinutes)
		if err != nil {
			log.Fatalf("✗ Failed to seed content %q: %v", c.Title, err)
		}
		log.Printf("  Seeded content: %s", c.Title)
	}

	for _, b := range badges {
		_, err := pool.Exec(ctx, `
			INSERT INTO badges (name, description, icon, criteria, points)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM badges WHERE name = $1)`,
			b.Name, b.Description, b.Icon, b.Criteria, b.Points)
		if err != nil {
			log.Fatalf("✗ Failed to seed badge %q: %v", b.Name, err)
		}
		log.Printf("  Seeded badge: %s", b.Name)
	}

	for _, s := range students {
		if err := seedStudent(ctx, pool, s); err != nil {
			log.Fatalf("✗ Failed to seed student %s %s: %v", s.FirstName, s.LastName, err)
		}
		log.Printf("  Seeded student: %s %s", s.FirstName, s.LastName)
	}

	if err := seedEducator(ctx, pool); err != nil {
		log.Fatalf("✗ Failed to seed educator: %v", err)
	}
	log.Println("  Seeded educator: John Smith")

	log.Println("✅ Database seeded successfully!")
	log.Println("Test credentials:")
	log.Println("  Students: sarah.johnson@student.lxp.com / student123")
	log.Println("            michael.chen@student.lxp.com / student123")
	log.Println("            emma.davis@student.lxp.com / student123")
	log.Println("  Educator: mr.smith@teacher.lxp.com / teacher123")
}

func seedStudent(ctx context.Context, pool *pgxpool.Pool, s studentSeed) error {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE email = $1)`, s.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), 12)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID string
	if err := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, user_type)
		VALUES ($1, $2, 'student') RETURNING id`,
		s.Email, string(hash)).Scan(&userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO students (user_id, first_name, last_name, email, date_of_birth, gender, grade_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, s.FirstName, s.LastName, s.Email, s.DateOfBirth, s.Gender, s.GradeLevel); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func seedEducator(ctx context.Context, pool *pgxpool.Pool) error {
	const email = "mr.smith@teacher.lxp.com"

	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM educators WHERE email = $1)`, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("teacher123"), 12)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID string
	if err := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, user_type)
		VALUES ($1, $2, 'educator') RETURNING id`,
		email, string(hash)).Scan(&userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO educators (user_id, first_name, last_name, email, department)
		VALUES ($1, 'John', 'Smith', $2, 'Mathematics')`,
		userID, email); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
