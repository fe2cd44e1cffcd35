package domain

import "time"

// DraftUser is a validated registration that still holds the plaintext
// password. It never reaches the store: WithPasswordHash turns it into a
// PendingUser, which has no plaintext field at all.
type DraftUser struct {
	name     string
	email    string
	password string
	phone    string
}

// NewDraftUser validates name, email, password and phone in that order and
// returns the first failure.
func NewDraftUser(name, email, password, phone string) (*DraftUser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	return &DraftUser{name: name, email: email, password: password, phone: phone}, nil
}

func (d *DraftUser) Name() string     { return d.name }
func (d *DraftUser) Email() string    { return d.email }
func (d *DraftUser) Password() string { return d.password }
func (d *DraftUser) Phone() string    { return d.phone }

// WithPasswordHash attaches the derived hash and drops the plaintext.
func (d *DraftUser) WithPasswordHash(hash string) (*PendingUser, error) {
	if err := ValidatePasswordHash(hash); err != nil {
		return nil, err
	}
	return &PendingUser{name: d.name, email: d.email, phone: d.phone, passwordHash: hash}, nil
}

// PendingUser is ready for insertion; the store assigns its ID.
type PendingUser struct {
	name         string
	email        string
	phone        string
	passwordHash string
}

func (p *PendingUser) Name() string         { return p.name }
func (p *PendingUser) Email() string        { return p.email }
func (p *PendingUser) Phone() string        { return p.phone }
func (p *PendingUser) PasswordHash() string { return p.passwordHash }

// User is a persisted identity.
type User struct {
	id           string
	name         string
	email        string
	phone        string
	passwordHash string
	createdAt    time.Time
}

// RestoreUser rebuilds a persisted identity from stored fields, re-running
// every field check so a corrupt row cannot produce an invalid User.
func RestoreUser(id, name, email, passwordHash, phone string, createdAt time.Time) (*User, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePasswordHash(passwordHash); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	return &User{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Credentials is a sign-in attempt with shape-checked fields.
type Credentials struct {
	email    string
	password string
}

func NewCredentials(email, password string) (Credentials, error) {
	if err := ValidateEmail(email); err != nil {
		return Credentials{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return Credentials{}, err
	}
	return Credentials{email: email, password: password}, nil
}

func (c Credentials) Email() string    { return c.email }
func (c Credentials) Password() string { return c.password }
