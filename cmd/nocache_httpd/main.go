package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Motmedel/nocache_httpd_go/pkg/http/fileserver"
	"github.com/Motmedel/nocache_httpd_go/pkg/http/requestid"
	motmedelLog "github.com/Motmedel/nocache_httpd_go/pkg/log"
	motmedelLogError "github.com/Motmedel/nocache_httpd_go/pkg/log/error"
)

func main() {
	logger := slog.New(
		&motmedelLog.ContextHandler{
			Handler: slog.NewJSONHandler(os.Stderr, nil),
			Extractors: []motmedelLog.ContextExtractor{
				&motmedelLog.ErrorContextExtractor{},
				&requestid.Extractor{},
			},
		},
	)
	slog.SetDefault(logger)

	if err := fileserver.New().Run(context.Background()); err != nil {
		motmedelLogError.LogFatal("An error occurred when running the file server.", err, logger)
	}
}
