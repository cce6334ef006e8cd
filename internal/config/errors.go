package config

import "errors"

var (
	ErrUnknownPreset    = errors.New("config: unknown preset")
	ErrUnknownJointType = errors.New("config: unknown joint type")
	ErrDuplicateJoint   = errors.New("config: duplicate joint name")
	ErrUnknownParent    = errors.New("config: unknown parent joint")
	ErrUnreachableJoint = errors.New("config: joint not connected to the universe")
	ErrBadVector        = errors.New("config: wrong vector length")
	ErrUnknownFormat    = errors.New("config: unknown file format")
)
