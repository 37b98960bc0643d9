package presentation

import "portfolio/internal/domain/portfolio"

const placeholderImage = "https://via.placeholder.com/350x200"

// FallbackProfile and its siblings are shown when the API cannot be
// reached. Each call returns a fresh copy.
func FallbackProfile() portfolio.Profile {
	p := portfolio.DefaultProfile()
	p.Bio = "Passionate full-stack developer with expertise in creating responsive and user-friendly web applications. Skilled in both front-end and back-end technologies."
	p.GithubURL = "https://github.com/aboelcode"
	p.LinkedinURL = "https://linkedin.com/in/aboelcode"
	p.FacebookURL = "https://facebook.com/aboelcode"
	p.ProfileImage = "https://via.placeholder.com/300"
	p.ResumeURL = "#"
	return p
}

func FallbackSkills() []portfolio.Skill {
	return []portfolio.Skill{
		{Name: "HTML", Category: "Frontend", Proficiency: 90, Icon: "html5", DisplayOrder: 1},
		{Name: "CSS", Category: "Frontend", Proficiency: 85, Icon: "css3", DisplayOrder: 2},
		{Name: "JavaScript", Category: "Frontend", Proficiency: 90, Icon: "javascript", DisplayOrder: 3},
		{Name: "Responsive Design", Category: "Frontend", Proficiency: 85, Icon: "mobile", DisplayOrder: 4},
		{Name: "Node.js", Category: "Backend", Proficiency: 85, Icon: "node-js", DisplayOrder: 5},
		{Name: "Express", Category: "Backend", Proficiency: 80, Icon: "server", DisplayOrder: 6},
		{Name: "SQLite", Category: "Database", Proficiency: 75, Icon: "database", DisplayOrder: 7},
		{Name: "PostgreSQL", Category: "Database", Proficiency: 70, Icon: "database", DisplayOrder: 8},
		{Name: "Git", Category: "Tools", Proficiency: 85, Icon: "git", DisplayOrder: 9},
		{Name: "Python", Category: "Programming", Proficiency: 75, Icon: "python", DisplayOrder: 10},
	}
}

func FallbackProjects() []portfolio.Project {
	web := []string{"Node.js", "Express", "SQLite", "JavaScript", "HTML", "CSS"}
	return []portfolio.Project{
		{
			Title:        "E-Commerce Platform",
			Description:  "A full-stack e-commerce platform with product catalog, shopping cart, and payment integration.",
			ImageURL:     placeholderImage,
			GithubURL:    "https://github.com/aboelcode/ecommerce",
			LiveURL:      "https://ecommerce-demo.aboelcode.com",
			Featured:     true,
			DisplayOrder: 1,
			Technologies: portfolio.EncodedTechnologiesOf(web...),
		},
		{
			Title:        "Task Management App",
			Description:  "A task management application to help users organize their work with features like task categories, due dates, and progress tracking.",
			ImageURL:     placeholderImage,
			GithubURL:    "https://github.com/aboelcode/taskmanager",
			LiveURL:      "https://taskmanager-demo.aboelcode.com",
			Featured:     true,
			DisplayOrder: 2,
			Technologies: portfolio.EncodedTechnologiesOf(web...),
		},
		{
			Title:        "Weather Dashboard",
			Description:  "A weather dashboard that displays current weather conditions and forecasts for multiple locations.",
			ImageURL:     placeholderImage,
			GithubURL:    "https://github.com/aboelcode/weather",
			LiveURL:      "https://weather-demo.aboelcode.com",
			Featured:     false,
			DisplayOrder: 3,
			Technologies: portfolio.EncodedTechnologiesOf("JavaScript", "HTML", "CSS", "Weather API"),
		},
	}
}
