package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Social graph & engagement errors
var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// Media pipeline errors
var (
	ErrUploadFailed     = errors.New("media upload failed")
	ErrInvalidMediaKind = errors.New("invalid media kind")
)

func NewSelfFollowError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrSelfFollow,
	}
}

func NewAlreadyFollowingError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrAlreadyFollowing,
	}
}

func NewNotFollowingError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrNotFollowing,
	}
}

func NewUploadError(filename string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Failed to upload %s", filename),
		Cause:      cause,
	}
}

func NewInvalidMediaKindError(kind string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidMediaKind,
		Details:    fmt.Sprintf("Unknown media kind: %s", kind),
		Field:      "kind",
	}
}

func IsSelfFollow(err error) bool {
	return errors.Is(err, ErrSelfFollow)
}

func IsAlreadyFollowing(err error) bool {
	return errors.Is(err, ErrAlreadyFollowing)
}

func IsNotFollowing(err error) bool {
	return errors.Is(err, ErrNotFollowing)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}
