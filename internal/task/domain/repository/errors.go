package repository

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("name already exists")
	ErrInUse         = errors.New("settings referenced by tasks")
)
