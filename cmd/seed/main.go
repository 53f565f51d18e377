package main

import (
	"context"
	"fmt"
	"os"

	"wellspring/internal/adapter"
	"wellspring/internal/cache"
	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/domain"
	"wellspring/internal/logger"
	"wellspring/internal/repository"
	"wellspring/internal/service"

	"go.uber.org/zap"
)

var likertFrequency = []string{"Never", "Rarely", "Sometimes", "Often", "Very often"}

type seedQuestion struct {
	Text     string
	Options  []string
	Category string
}

type seedRecommendation struct {
	Category    string
	MinScore    int
	MaxScore    int
	Title       string
	Description string
	Priority    domain.Priority
	Tips        []string
}

type seedAssessment struct {
	Assessment      domain.Assessment
	Questions       []seedQuestion
	Recommendations []seedRecommendation
}

// seedData holds the initial assessment catalog. Recommendation categories
// are stored pre-normalized (lowercase, no trailing digits) so they match
// the normalized keys of computed category scores.
var seedData = []seedAssessment{
	{
		Assessment: domain.Assessment{
			Type:        "stress",
			Title:       "Stress Assessment",
			Description: "Evaluate your current stress levels and identify areas for improvement",
			Duration:    "5-10 minutes",
			Icon:        "brain",
		},
		Questions: []seedQuestion{
			{"How often do you feel overwhelmed by your responsibilities?", likertFrequency, "general"},
			{"How would you rate your ability to manage stress?", []string{"Excellent", "Good", "Average", "Below average", "Poor"}, "management"},
			{"How often do you experience physical symptoms of stress (headaches, tension, etc.)?", likertFrequency, "physical"},
			{"How well do you sleep on most nights?", []string{"Very well", "Well", "Average", "Poorly", "Very poorly"}, "physical"},
			{"How often do you take time for relaxation or self-care?", []string{"Daily", "Several times a week", "Once a week", "Rarely", "Never"}, "management"},
		},
		Recommendations: []seedRecommendation{
			{"physical", 0, 30, "Prioritize Physical Recovery", "Your body is showing signs of stress. Focus on sleep, nutrition, and gentle exercise to help your physical recovery.", domain.PriorityHigh,
				[]string{"Aim for 7-9 hours of sleep each night", "Take a short walk after meals", "Stay hydrated throughout the day"}},
			{"management", 0, 30, "Develop a Stress Management Plan", "Create a structured plan to identify stressors and implement daily stress reduction techniques.", domain.PriorityHigh,
				[]string{"Write down your top three stressors", "Schedule one stress-relief activity per day", "Review your plan weekly and adjust"}},
			{"general", 31, 70, "Regular Mindfulness Practice", "Incorporate 10-15 minutes of daily mindfulness meditation to improve stress resilience.", domain.PriorityMedium,
				[]string{"Start with 5 minutes of guided meditation", "Practice at the same time each day", "Notice your breath when you feel tense"}},
			{"work_life", 31, 70, "Establish Work-Life Boundaries", "Create clearer boundaries between work and personal time to prevent burnout.", domain.PriorityMedium,
				[]string{"Set a hard stop time for work", "Turn off work notifications after hours", "Protect at least one work-free day per week"}},
			{"emotional", 31, 70, "Emotional Regulation Techniques", "Practice techniques like deep breathing and progressive muscle relaxation to manage emotional responses to stress.", domain.PriorityMedium,
				[]string{"Try box breathing: inhale 4, hold 4, exhale 4, hold 4", "Tense and release each muscle group before bed", "Name the emotion before reacting to it"}},
			{"general", 71, 100, "Maintain Your Wellbeing Routine", "Continue your effective stress management practices and consider sharing your strategies with others.", domain.PriorityLow,
				[]string{"Keep a log of what works for you", "Share one strategy with a friend or colleague", "Revisit your routine when life changes"}},
			{"cognitive", 71, 100, "Cognitive Optimization", "Your stress management is working well. Consider techniques like brain training games to further enhance cognitive performance.", domain.PriorityLow,
				[]string{"Learn a new skill or language", "Alternate focused work with short breaks", "Try puzzles or memory exercises"}},
			{"control", 71, 100, "Build on Your Success", "You are managing stress effectively. Consider setting new wellbeing goals to further enhance your quality of life.", domain.PriorityLow,
				[]string{"Set one new wellbeing goal this month", "Celebrate progress, not just outcomes", "Check in with yourself monthly"}},
		},
	},
	{
		Assessment: domain.Assessment{
			Type:        "workplace",
			Title:       "Workplace Wellbeing",
			Description: "Assess factors affecting your wellbeing at work",
			Duration:    "5-10 minutes",
			Icon:        "briefcase",
		},
		Questions: []seedQuestion{
			{"How satisfied are you with your current job role?", []string{"Very satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very dissatisfied"}, "job_satisfaction"},
			{"How would you rate the level of support from your management?", []string{"Excellent", "Good", "Average", "Poor", "Very poor"}, "management_support"},
			{"How comfortable is your physical work environment?", []string{"Very comfortable", "Comfortable", "Neutral", "Uncomfortable", "Very uncomfortable"}, "environment"},
		},
		Recommendations: []seedRecommendation{
			{"job_satisfaction", 0, 30, "Career Path Evaluation", "Take time to reflect on your career goals and whether your current position aligns with them.", domain.PriorityHigh,
				[]string{"List what energizes and drains you at work", "Talk to people in roles you find interesting", "Set a timeline for your next career decision"}},
			{"management_support", 0, 30, "Communicate Needs to Management", "Schedule a meeting with your supervisor to discuss specific support needs and challenges.", domain.PriorityHigh,
				[]string{"Prepare concrete examples before the meeting", "Propose solutions, not just problems", "Follow up in writing after the conversation"}},
			{"work_stress", 0, 30, "Workplace Stress Reduction Plan", "Identify key workplace stressors and develop specific strategies to address each one.", domain.PriorityHigh,
				[]string{"Track stressful moments for a week", "Address the biggest stressor first", "Build short recovery breaks into your day"}},
			{"environment", 31, 70, "Optimize Your Work Environment", "Make ergonomic adjustments to your workspace and consider how to minimize distractions.", domain.PriorityMedium,
				[]string{"Position your screen at eye level", "Use headphones to signal focused time", "Declutter your desk at the end of each day"}},
			{"work_life_balance", 31, 70, "Review Work Schedule", "Analyze your work schedule and identify opportunities to create better boundaries for personal time.", domain.PriorityMedium,
				[]string{"Block personal time in your calendar", "Batch meetings to protect focus hours", "Say no to one non-essential commitment"}},
			{"communication", 31, 70, "Enhance Workplace Communication", "Practice clear communication techniques and consider how to address communication challenges.", domain.PriorityMedium,
				[]string{"Summarize agreements at the end of meetings", "Ask clarifying questions before responding", "Prefer direct conversation over long email threads"}},
			{"recognition", 71, 100, "Mentoring Opportunities", "Consider sharing your positive workplace experiences by mentoring colleagues.", domain.PriorityLow,
				[]string{"Offer to onboard a new team member", "Share lessons learned in team forums", "Recognize a colleague's work publicly"}},
			{"growth", 71, 100, "Advanced Professional Development", "Build on your workplace satisfaction by seeking additional growth opportunities like specialized training.", domain.PriorityLow,
				[]string{"Identify one skill to deepen this quarter", "Ask about training budget or courses", "Volunteer for a stretch assignment"}},
			{"strengths_use", 71, 100, "Strengths Optimization", "Identify ways to further leverage your key strengths in new projects or responsibilities.", domain.PriorityLow,
				[]string{"List your top three strengths", "Propose a project that uses them", "Ask for feedback on where you add most value"}},
		},
	},
	{
		Assessment: domain.Assessment{
			Type:        "digital",
			Title:       "Digital Wellbeing",
			Description: "Evaluate your relationship with technology and digital habits",
			Duration:    "5-10 minutes",
			Icon:        "smartphone",
		},
		Questions: []seedQuestion{
			{"How many hours per day do you typically spend on digital devices?", []string{"Less than 2 hours", "2-4 hours", "4-6 hours", "6-8 hours", "More than 8 hours"}, "screen_time"},
			{"How often do you check your phone without a specific purpose?", []string{"Rarely", "A few times a day", "Every hour", "Every 30 minutes", "Every 10 minutes or less"}, "phone_usage"},
			{"How often do you take breaks from screen time?", []string{"Every 30 minutes", "Every hour", "Every few hours", "Rarely", "Never"}, "breaks"},
		},
		Recommendations: []seedRecommendation{
			{"screen_time", 0, 30, "Digital Detox Plan", "Create a structured plan to gradually reduce screen time, starting with screen-free meals.", domain.PriorityHigh,
				[]string{"Keep devices away from the dinner table", "Set daily screen time limits per app", "Replace one scrolling session with a walk"}},
			{"phone_usage", 0, 30, "Phone Usage Intervention", "Use screen time tracking apps and set specific goals to reduce checking your phone.", domain.PriorityHigh,
				[]string{"Turn off non-essential notifications", "Keep your phone out of reach while working", "Check usage stats at the end of each week"}},
			{"anxiety", 0, 30, "Digital Anxiety Management", "Practice being unreachable for short periods and gradually build your comfort with being offline.", domain.PriorityHigh,
				[]string{"Start with 30 offline minutes per day", "Tell close contacts when you will be offline", "Notice how you feel after offline time"}},
			{"breaks", 31, 70, "Structured Screen Breaks", "Implement the 20-20-20 rule: every 20 minutes, look at something 20 feet away for 20 seconds.", domain.PriorityMedium,
				[]string{"Set a recurring break reminder", "Stand and stretch during breaks", "Look out a window instead of at another screen"}},
			{"sleep", 31, 70, "Digital Sleep Hygiene", "Create a technology-free bedroom and stop using devices at least 1 hour before bedtime.", domain.PriorityMedium,
				[]string{"Charge your phone outside the bedroom", "Use an analog alarm clock", "Read a book instead of scrolling before sleep"}},
			{"social_comparison", 31, 70, "Healthy Social Media Habits", "Audit your social media feeds and remove or mute accounts that trigger negative comparisons.", domain.PriorityMedium,
				[]string{"Unfollow accounts that lower your mood", "Follow accounts that teach or inspire you", "Limit social media to set times of day"}},
			{"focus", 71, 100, "Digital Focus Optimization", "Build on your good habits by exploring productivity techniques like timeboxing when using technology.", domain.PriorityLow,
				[]string{"Plan your day in focused time blocks", "Use do-not-disturb during deep work", "Batch email and messages into set slots"}},
			{"boundaries", 71, 100, "Digital Boundary Mastery", "Share your effective digital boundary strategies with friends and family who might benefit.", domain.PriorityLow,
				[]string{"Write down the boundaries that work for you", "Suggest device-free time with family", "Help a friend set up screen time limits"}},
			{"social_connections", 71, 100, "Technology for Connection", "Explore ways to use technology intentionally to enhance rather than replace meaningful connections.", domain.PriorityLow,
				[]string{"Schedule regular video calls with distant friends", "Prefer calls over text for important topics", "Use apps to plan in-person meetups"}},
		},
	},
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	assessmentRepo := repository.NewAssessmentDatabaseAdapter(db)
	recommendationRepo := repository.NewRecommendationDatabaseAdapter(db)

	// Redis is optional here as well. Without it the invalidation after
	// seeding is a no-op and cached entries simply age out.
	var cacheAdapter domain.Cache
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err != nil {
		log.Warn("Failed to connect to Redis, seeding without cache invalidation", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}
	referenceCache := service.NewReferenceCacheService(cacheAdapter, assessmentRepo, recommendationRepo, cfg.Cache.ReferenceTTL)

	// Seeding is idempotent: an already populated catalog is left alone.
	existing, err := assessmentRepo.GetAssessments(ctx)
	if err != nil {
		log.Fatal("Failed to check existing assessments", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("Database already contains assessments, skipping seed", zap.Int("count", len(existing)))
		return
	}

	for _, sa := range seedData {
		assessment := sa.Assessment
		if err := assessmentRepo.SaveAssessment(ctx, &assessment); err != nil {
			log.Fatal("Failed to seed assessment", zap.String("type", assessment.Type), zap.Error(err))
		}

		for i, sq := range sa.Questions {
			question := &domain.Question{
				AssessmentType: assessment.Type,
				Text:           sq.Text,
				Options:        sq.Options,
				Order:          i + 1,
				Category:       sq.Category,
			}
			if err := assessmentRepo.SaveQuestion(ctx, question); err != nil {
				log.Fatal("Failed to seed question", zap.String("type", assessment.Type), zap.Int("order", i+1), zap.Error(err))
			}
		}

		for _, sr := range sa.Recommendations {
			rec := &domain.Recommendation{
				AssessmentType: assessment.Type,
				Category:       sr.Category,
				Title:          sr.Title,
				Description:    sr.Description,
				Tips:           sr.Tips,
				MinScore:       sr.MinScore,
				MaxScore:       sr.MaxScore,
				Priority:       sr.Priority,
			}
			if err := recommendationRepo.SaveRecommendation(ctx, rec); err != nil {
				log.Fatal("Failed to seed recommendation", zap.String("type", assessment.Type), zap.String("title", sr.Title), zap.Error(err))
			}
		}

		// Drop any cached reference data for this type so readers see the
		// freshly seeded catalog before the TTL expires.
		if err := referenceCache.Invalidate(ctx, assessment.Type); err != nil {
			log.Warn("Failed to invalidate reference cache", zap.String("type", assessment.Type), zap.Error(err))
		}

		log.Info("Seeded assessment",
			zap.String("type", assessment.Type),
			zap.Int("questions", len(sa.Questions)),
			zap.Int("recommendations", len(sa.Recommendations)),
		)
	}
	log.Info("Initial data seeding process completed.")
}
