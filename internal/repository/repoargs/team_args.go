package repoargs

type TeamMemberCreate struct {
	Name   string
	Role   string
	Active bool
}
