package authview

import "github.com/nfrund/examwhispers/internal/domain"

// ViewState is everything Render needs.
type ViewState struct {
	Mode            FormMode
	User            *domain.User
	AuthFormVisible bool
	ActivePage      string
	Submitting      bool
	Notices         []domain.Notice
}

func (s ViewState) Labels() Labels {
	return s.Mode.Labels()
}

func (s ViewState) SignedIn() bool {
	return s.User != nil
}
