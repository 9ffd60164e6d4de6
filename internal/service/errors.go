package service

import (
	"errors"

	"github.com/japb1998/wacrm/internal/mapper"
	"github.com/japb1998/wacrm/internal/mapping"
)

var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateExists      = errors.New("template already exists")
	ErrTemplateNotSendable = errors.New("template has no content sid")
	ErrContactNotFound     = errors.New("contact not found")
	ErrContactExists       = errors.New("contact with this phone number already exists")
	ErrInvalidMapping      = mapping.ErrInvalidMapping
	ErrInvalidPhone        = mapper.ErrInvalidPhone
)
