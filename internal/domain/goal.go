package domain

import "time"

// DraftGoal is a goal that has not been stored yet.
type DraftGoal struct {
	userID string
	text   string
}

func NewDraftGoal(userID, text string) (*DraftGoal, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ValidateGoalText(text); err != nil {
		return nil, err
	}
	return &DraftGoal{userID: userID, text: text}, nil
}

func (g *DraftGoal) UserID() string { return g.userID }
func (g *DraftGoal) Text() string   { return g.text }

type Goal struct {
	ID        string
	Text      string
	UserID    string
	CreatedAt time.Time
}

func RestoreGoal(id, text, userID string, createdAt time.Time) (*Goal, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := ValidateGoalText(text); err != nil {
		return nil, err
	}
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	return &Goal{ID: id, Text: text, UserID: userID, CreatedAt: createdAt}, nil
}
