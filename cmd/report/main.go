// Command report prints the latest recorded balance as a Markdown table,
// for embedding in a README or job summary.
package main

import (
	"fmt"
	"os"

	"DormPower/internal/config"
	"DormPower/internal/notifier"
	"DormPower/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)

	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	st := store.New(cfg.Storage.DataDir, cfg.Storage.IndexFile, logger)
	window, _ := st.LoadWindow()
	if len(window) == 0 {
		logger.WithField("path", st.WindowPath()).Fatal("no readings recorded yet")
	}

	out, err := notifier.FormatRecordMarkdown(&window[len(window)-1])
	if err != nil {
		logger.WithError(err).Fatal("render balance record")
	}
	fmt.Print(out)
}
