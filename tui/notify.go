package tui

import "time"

// bannerTimeout is how long a success banner stays up
const bannerTimeout = 8 * time.Second

type banner struct {
	title  string
	detail string
}

// session is the state shared between copies of the value-typed Model.
// It is the controller's Notifier and records how the dialog ended.
type session struct {
	result    Result
	loggedIn  bool
	banner    banner
	bannerSeq int
}

func (s *session) Success(title, detail string) {
	s.banner = banner{title: title, detail: detail}
	s.bannerSeq++
}
