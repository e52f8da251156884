package service

import "errors"

// Категории ошибок ядра. Хэндлеры сопоставляют их с HTTP-статусами через errors.Is.
var (
	// ErrNotFound - подопечный/тревога/трекинг/назначение не найдены
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition - попытка перевести тревогу из терминального статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput - некорректные входные данные запроса
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContacts - у подопечного не настроен ни один контакт для оповещения
	ErrNoContacts = errors.New("no contacts configured")
)
