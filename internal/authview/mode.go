package authview

// FormMode selects between the login and the sign-up form.
type FormMode int

const (
	ModeLogin FormMode = iota
	ModeSignUp
)

func (m FormMode) String() string {
	if m == ModeSignUp {
		return "signup"
	}
	return "login"
}

// Toggled returns the other mode.
func (m FormMode) Toggled() FormMode {
	if m == ModeSignUp {
		return ModeLogin
	}
	return ModeSignUp
}

// Labels is the text the form shows for a mode.
type Labels struct {
	Title  string
	Submit string
	Prompt string
	Toggle string
}

// Labels derives the form text from the mode. Nothing else stores label text.
func (m FormMode) Labels() Labels {
	if m == ModeSignUp {
		return Labels{
			Title:  "Sign Up",
			Submit: "Sign Up",
			Prompt: "Already have an account?",
			Toggle: "Login",
		}
	}
	return Labels{
		Title:  "Login",
		Submit: "Login",
		Prompt: "Don't have an account?",
		Toggle: "Sign up",
	}
}
