package portfolio

// DefaultProfile is served when no profile document exists and is what a
// fresh data directory is seeded with.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Ahmed Aboelcode",
		Title:    "Full-Stack Developer",
		Bio:      "Passionate full-stack developer with expertise in creating responsive and user-friendly web applications.",
		Email:    "aboelcode@gmail.com",
		Location: "Egypt",
	}
}

// DefaultDocument returns the seed content for r.
func DefaultDocument(r Resource) any {
	switch r {
	case ResourceProfile:
		return DefaultProfile()
	case ResourceSkills:
		return []Skill{}
	case ResourceProjects:
		return []Project{}
	default:
		return []Message{}
	}
}
