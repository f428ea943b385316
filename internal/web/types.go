package web

type ParticipantRow struct {
	Email           string
	EncodedActivity string
	EncodedEmail    string
}

// RemoveURL points at the unregister confirmation prompt for this participant.
func (p ParticipantRow) RemoveURL() string {
	return "/unregister?activity=" + p.EncodedActivity + "&email=" + p.EncodedEmail
}

type ActivityCard struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

type ActivitiesView struct {
	Cards      []ActivityCard
	Options    []string
	LoadFailed bool
}

type StatusView struct {
	Text            string
	Kind            string
	HideAfterMillis int64
}

func (s StatusView) Visible() bool {
	return s.Text != "" && s.HideAfterMillis > 0
}

type DraftView struct {
	Email    string
	Activity string
}

type PageData struct {
	Activities ActivitiesView
	Status     StatusView
	Draft      DraftView
}

type ConfirmData struct {
	Activity string
	Email    string
}
