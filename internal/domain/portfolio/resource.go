package portfolio

import "fmt"

type Resource string

const (
	ResourceProfile  Resource = "profile"
	ResourceSkills   Resource = "skills"
	ResourceProjects Resource = "projects"
	ResourceMessages Resource = "messages"
)

func Resources() []Resource {
	return []Resource{ResourceProfile, ResourceSkills, ResourceProjects, ResourceMessages}
}

func (r Resource) Valid() bool {
	switch r {
	case ResourceProfile, ResourceSkills, ResourceProjects, ResourceMessages:
		return true
	default:
		return false
	}
}

func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown resource %q", s)
	}
	return r, nil
}

// FileName is the document name used by file-backed stores.
func (r Resource) FileName() string {
	return string(r) + ".json"
}
