package action

import "github.com/beevik/etree"

// PauseAction suspends processing of bound actions. No payload.
type PauseAction struct{}

func (a *PauseAction) Tag() string { return "pause-action" }

func (a *PauseAction) FromXML(e *etree.Element) error { return nil }

func (a *PauseAction) ToXML() *etree.Element {
	return etree.NewElement("pause-action")
}

// ResumeAction resumes processing of bound actions. No payload.
type ResumeAction struct{}

func (a *ResumeAction) Tag() string { return "resume-action" }

func (a *ResumeAction) FromXML(e *etree.Element) error { return nil }

func (a *ResumeAction) ToXML() *etree.Element {
	return etree.NewElement("resume-action")
}
