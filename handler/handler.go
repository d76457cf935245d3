package handler

import (
	"github.com/sirupsen/logrus"

	"timelinebot/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
