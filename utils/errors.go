package utils

import "fmt"

// WrapReadError returns a wrapped read error
func WrapReadError(err error) error {
	return fmt.Errorf("read error: %w", err)
}

// WrapSeekError returns a wrapped seek error
func WrapSeekError(err error) error {
	return fmt.Errorf("seek error: %w", err)
}

// WrapWriteError returns a wrapped write error
func WrapWriteError(err error) error {
	return fmt.Errorf("write error: %w", err)
}

// WrapCloseError returns a wrapped close error
func WrapCloseError(err error) error {
	return fmt.Errorf("close error: %w", err)
}

// WrapExistsError returns a wrapped exists error
func WrapExistsError(err error) error {
	return fmt.Errorf("exists error: %w", err)
}

// WrapTouchError returns a wrapped touch error
func WrapTouchError(err error) error {
	return fmt.Errorf("touch error: %w", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return fmt.Errorf("delete error: %w", err)
}

// WrapCopyToLocationError returns a wrapped copyToLocation error
func WrapCopyToLocationError(err error) error {
	return fmt.Errorf("copy to location error: %w", err)
}

// WrapCopyToFileError returns a wrapped copyToFile error
func WrapCopyToFileError(err error) error {
	return fmt.Errorf("copy to file error: %w", err)
}

// WrapMoveToLocationError returns a wrapped moveToLocation error
func WrapMoveToLocationError(err error) error {
	return fmt.Errorf("move to location error: %w", err)
}

// WrapMoveToFileError returns a wrapped moveToFile error
func WrapMoveToFileError(err error) error {
	return fmt.Errorf("move to file error: %w", err)
}

// WrapLastModifiedError returns a wrapped lastModified error
func WrapLastModifiedError(err error) error {
	return fmt.Errorf("last modified error: %w", err)
}

// WrapSizeError returns a wrapped size error
func WrapSizeError(err error) error {
	return fmt.Errorf("size error: %w", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return fmt.Errorf("list error: %w", err)
}

// WrapListByPrefixError returns a wrapped list by prefix error
func WrapListByPrefixError(err error) error {
	return fmt.Errorf("list by prefix error: %w", err)
}

// WrapListByRegexError returns a wrapped list by regex error
func WrapListByRegexError(err error) error {
	return fmt.Errorf("list by regex error: %w", err)
}

// WrapSignedURLError returns a wrapped signed url error
func WrapSignedURLError(err error) error {
	return fmt.Errorf("signed url error: %w", err)
}
