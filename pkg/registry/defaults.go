package registry

import "ezypc-storefront/internal/models"

const (
	CategoryBudget    = "budget"
	CategoryUsage     = "usage"
	CategoryPriority  = "priority"
	CategorySecondary = "secondary"
)

func Default() *QuestionRegistry {
	return &QuestionRegistry{
		Version:     "1.0.0",
		LastUpdated: "2025-01-01",
		UseCases: []UseCaseEntry{
			{
				UseCase:     models.UseCaseGaming,
				DisplayName: "Gaming",
				Description: "Esports, AAA titles and streaming.",
				Questions: []models.Question{
					{
						ID:       "gaming-budget",
						Text:     "What is your approximate budget?",
						Options:  []string{"Under ₹60,000", "₹60,000 - ₹1,00,000", "₹1,00,000 - ₹1,50,000", "Above ₹1,50,000"},
						Category: CategoryBudget,
					},
					{
						ID:       "gaming-titles",
						Text:     "What kind of games do you primarily play?",
						Options:  []string{"Esports titles (e.g., Valorant, CS:GO)", "AAA single-player games (e.g., Cyberpunk 2077)", "A mix of everything", "Indie and less demanding games"},
						Category: CategoryUsage,
					},
					{
						ID:       "gaming-priority",
						Text:     "What is more important to you?",
						Options:  []string{"High frame rates (144+ FPS)", "Maximum graphics quality (4K, Ray Tracing)", "A balance between performance and quality", "Just a smooth experience at 1080p"},
						Category: CategoryPriority,
					},
					{
						ID:       "gaming-streaming",
						Text:     "Do you also plan to stream or create content?",
						Options:  []string{"Yes, frequently", "Occasionally", "No, just gaming", "Not sure yet"},
						Category: CategorySecondary,
					},
				},
			},
			{
				UseCase:     models.UseCaseStudent,
				DisplayName: "Student",
				Description: "Coursework, projects and a bit of everything else.",
				Questions: []models.Question{
					{
						ID:       "student-budget",
						Text:     "What is your approximate budget?",
						Options:  []string{"Under ₹40,000", "₹40,000 - ₹70,000", "₹70,000 - ₹1,00,000", "Above ₹1,00,000"},
						Category: CategoryBudget,
					},
					{
						ID:       "student-field",
						Text:     "What is your primary field of study?",
						Options:  []string{"General studies (arts, commerce, etc.)", "Engineering or Computer Science", "Design, Video Editing, or Architecture", "Research or data-heavy fields"},
						Category: CategoryUsage,
					},
					{
						ID:       "student-portability",
						Text:     "How important is portability for you?",
						Options:  []string{"Very important, I need a lightweight laptop", "Somewhat important, but I value performance too", "Not important, a desktop PC is fine", "I prefer a desktop for more power"},
						Category: CategoryPriority,
					},
					{
						ID:       "student-secondary",
						Text:     "Do you have any secondary uses in mind?",
						Options:  []string{"Light gaming", "Watching movies and media", "Coding and projects", "None, just for studies"},
						Category: CategorySecondary,
					},
				},
			},
			{
				UseCase:     models.UseCaseGeneral,
				DisplayName: "General Use",
				Description: "Home, office and family computing.",
				Questions: []models.Question{
					{
						ID:       "general-budget",
						Text:     "What is your approximate budget?",
						Options:  []string{"Under ₹35,000", "₹35,000 - ₹55,000", "₹55,000 - ₹80,000", "Above ₹80,000"},
						Category: CategoryBudget,
					},
					{
						ID:       "general-purpose",
						Text:     "What is the main purpose of this computer?",
						Options:  []string{"Web browsing, email, and office work", "Media consumption (Netflix, YouTube)", "Home office and light multitasking", "Family use with some casual gaming"},
						Category: CategoryUsage,
					},
					{
						ID:       "general-form-factor",
						Text:     "What form factor do you prefer?",
						Options:  []string{"Laptop for portability", "Desktop PC for upgradability", "All-in-One for a clean setup", "Mini PC for saving space"},
						Category: CategoryPriority,
					},
					{
						ID:       "general-value",
						Text:     "Is there anything specific you value most?",
						Options:  []string{"A large, high-quality display", "Fast performance and responsiveness", "Long battery life (for laptops)", "Plenty of storage space"},
						Category: CategorySecondary,
					},
				},
			},
		},
	}
}
