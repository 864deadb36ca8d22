package solver

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used to report bracket failures.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}
