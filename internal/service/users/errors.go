package users

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("users: invalid input data")

	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("users: email already registered")

	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("users: invalid email or password")

	// ErrAccountNotApproved учётная запись ещё не одобрена или отклонена
	ErrAccountNotApproved = errors.New("users: account is not approved")

	// ErrUnauthorized токен отсутствует, недействителен или пользователь удалён
	ErrUnauthorized = errors.New("users: unauthorized")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("users: user not found")

	// ErrForbidden действие доступно только администратору
	ErrForbidden = errors.New("users: admin role required")

	// ErrSelfDemotion администратор снимает роль с себя без подтверждения
	ErrSelfDemotion = errors.New("users: removing your own admin role requires confirmation")

	// ErrSelfDeletion администратор не может удалить сам себя
	ErrSelfDeletion = errors.New("users: cannot delete your own account")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users: internal error")
)
