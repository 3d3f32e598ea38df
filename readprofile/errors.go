package readprofile

import "github.com/grailbio/base/errors"

func malformedRead(reason string) error {
	return errors.E(errors.Invalid, "readprofile: malformed read: "+reason)
}

func ioError(cause error, reason string) error {
	return errors.E(cause, "readprofile: "+reason)
}
