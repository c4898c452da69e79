package model

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the categories the front end renders differently.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindPermission:
		return "permission"
	default:
		return "unknown"
	}
}

// Code is a machine-readable rejection reason.
type Code string

const (
	CodeNoSuchTeam          Code = "NO_SUCH_TEAM"
	CodeNoSuchMatch         Code = "NO_SUCH_MATCH"
	CodeNoSuchPlayer        Code = "NO_SUCH_PLAYER"
	CodeDuplicateTeam       Code = "DUPLICATE_TEAM"
	CodeAlreadyCaptain      Code = "ALREADY_CAPTAIN"
	CodeAlreadyRostered     Code = "ALREADY_ROSTERED"
	CodeNotRostered         Code = "NOT_ROSTERED"
	CodeAlreadyCompleted    Code = "ALREADY_COMPLETED"
	CodeCompetitionMismatch Code = "COMPETITION_MISMATCH"
	CodeMalformedStatLine   Code = "MALFORMED_STAT_LINE"
	CodeScoreGoalMismatch   Code = "SCORE_GOAL_MISMATCH"
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodePermissionDenied    Code = "PERMISSION_DENIED"
)

var codeKinds = map[Code]Kind{
	CodeNoSuchTeam:          KindNotFound,
	CodeNoSuchMatch:         KindNotFound,
	CodeNoSuchPlayer:        KindNotFound,
	CodeDuplicateTeam:       KindConflict,
	CodeAlreadyCaptain:      KindConflict,
	CodeAlreadyRostered:     KindConflict,
	CodeNotRostered:         KindConflict,
	CodeAlreadyCompleted:    KindConflict,
	CodeCompetitionMismatch: KindConflict,
	CodeMalformedStatLine:   KindValidation,
	CodeScoreGoalMismatch:   KindValidation,
	CodeInvalidArgument:     KindValidation,
	CodePermissionDenied:    KindPermission,
}

// Error is a rejected engine operation. It is an ordinary return value: the
// operation made no state change and Message names the violated rule.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Kind() Kind {
	return codeKinds[e.Code]
}

// Is reports whether target is an *Error with the same code, so the sentinels
// below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrNoSuchTeam          = &Error{Code: CodeNoSuchTeam}
	ErrNoSuchMatch         = &Error{Code: CodeNoSuchMatch}
	ErrNoSuchPlayer        = &Error{Code: CodeNoSuchPlayer}
	ErrDuplicateTeam       = &Error{Code: CodeDuplicateTeam}
	ErrAlreadyCaptain      = &Error{Code: CodeAlreadyCaptain}
	ErrAlreadyRostered     = &Error{Code: CodeAlreadyRostered}
	ErrNotRostered         = &Error{Code: CodeNotRostered}
	ErrAlreadyCompleted    = &Error{Code: CodeAlreadyCompleted}
	ErrCompetitionMismatch = &Error{Code: CodeCompetitionMismatch}
	ErrMalformedStatLine   = &Error{Code: CodeMalformedStatLine}
	ErrScoreGoalMismatch   = &Error{Code: CodeScoreGoalMismatch}
	ErrInvalidArgument     = &Error{Code: CodeInvalidArgument}
	ErrPermissionDenied    = &Error{Code: CodePermissionDenied}
)

// KindOf returns the kind of err, or KindUnknown when err is not a rejection.
// Unknown errors are infrastructure faults.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

func NoSuchTeam(comp Competition, name string) *Error {
	return &Error{
		Code:     CodeNoSuchTeam,
		Message:  fmt.Sprintf("team '%s' does not exist in the %s competition", name, comp),
		Metadata: map[string]string{"team": name, "competition": string(comp)},
	}
}

func NoSuchMatch(id int32) *Error {
	return &Error{
		Code:     CodeNoSuchMatch,
		Message:  fmt.Sprintf("match #%d does not exist", id),
		Metadata: map[string]string{"match_id": fmt.Sprint(id)},
	}
}

func NoSuchPlayer(playerID string) *Error {
	return &Error{
		Code:     CodeNoSuchPlayer,
		Message:  fmt.Sprintf("no stats recorded for player %s", playerID),
		Metadata: map[string]string{"player": playerID},
	}
}

func DuplicateTeam(name string) *Error {
	return &Error{
		Code:     CodeDuplicateTeam,
		Message:  fmt.Sprintf("a team named '%s' already exists", name),
		Metadata: map[string]string{"team": name},
	}
}

func AlreadyCaptain(playerID, team string) *Error {
	return &Error{
		Code:     CodeAlreadyCaptain,
		Message:  fmt.Sprintf("player %s is already the captain of '%s'", playerID, team),
		Metadata: map[string]string{"player": playerID, "team": team},
	}
}

func AlreadyRostered(playerID, team string) *Error {
	return &Error{
		Code:     CodeAlreadyRostered,
		Message:  fmt.Sprintf("player %s is already on the roster of '%s'", playerID, team),
		Metadata: map[string]string{"player": playerID, "team": team},
	}
}

func NotRostered(playerID, team string) *Error {
	return &Error{
		Code:     CodeNotRostered,
		Message:  fmt.Sprintf("player %s is not on the roster of '%s'", playerID, team),
		Metadata: map[string]string{"player": playerID, "team": team},
	}
}

func AlreadyCompleted(id int32) *Error {
	return &Error{
		Code:     CodeAlreadyCompleted,
		Message:  fmt.Sprintf("match #%d has already been completed", id),
		Metadata: map[string]string{"match_id": fmt.Sprint(id)},
	}
}

func CompetitionMismatch(id int32, scheduled, submitted Competition) *Error {
	return &Error{
		Code:    CodeCompetitionMismatch,
		Message: fmt.Sprintf("match #%d belongs to the %s competition, not %s", id, scheduled, submitted),
		Metadata: map[string]string{
			"match_id":  fmt.Sprint(id),
			"scheduled": string(scheduled),
			"submitted": string(submitted),
		},
	}
}

func MalformedStatLine(side Side, line string) *Error {
	return &Error{
		Code:     CodeMalformedStatLine,
		Message:  fmt.Sprintf("invalid stats format for %s: '%s', use goals/assists/saves (e.g. 2/1/0)", side, line),
		Metadata: map[string]string{"side": side.String(), "line": line},
	}
}

func ScoreGoalMismatch(side Side, declared, computed int) *Error {
	return &Error{
		Code:    CodeScoreGoalMismatch,
		Message: fmt.Sprintf("total goals (%d) doesn't match %s's score (%d)", computed, side, declared),
		Metadata: map[string]string{
			"side":     side.String(),
			"declared": fmt.Sprint(declared),
			"computed": fmt.Sprint(computed),
		},
	}
}

func InvalidArgument(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

func PermissionDenied(format string, args ...any) *Error {
	return &Error{
		Code:    CodePermissionDenied,
		Message: fmt.Sprintf(format, args...),
	}
}

func NotOnAnyTeam(comp Competition, playerID string) *Error {
	return &Error{
		Code:     CodeNotRostered,
		Message:  fmt.Sprintf("player %s is not on any team in the %s competition", playerID, comp),
		Metadata: map[string]string{"player": playerID, "competition": string(comp)},
	}
}

func NoResult(id int32) *Error {
	return &Error{
		Code:     CodeNoSuchMatch,
		Message:  fmt.Sprintf("no result has been recorded for match #%d", id),
		Metadata: map[string]string{"match_id": fmt.Sprint(id)},
	}
}
