// Package service implements the tracker's two operations groups: the user
// directory (UserService) and the exercise log (ExerciseService).
//
// Services depend on the store interfaces, publish domain events after
// successful writes and record business metrics. They return sentinel
// errors (ErrUserNotFound) or domain validation errors that the API layer
// maps to HTTP responses.
package service
