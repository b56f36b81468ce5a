package core

import "errors"

// Projects errors
var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectInvalidArgs      = errors.New("project invalid args")
	ErrMemberAlreadyExists     = errors.New("member already exists")
	ErrInvitationAlreadyExists = errors.New("invitation already exists")
)

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)
