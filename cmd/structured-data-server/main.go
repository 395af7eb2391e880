package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/config"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/events"
	"github.com/xwiki-contrib/api-structured-data/server"
)

// All loggers are derived from the global one
var logger = config.RootLogger

func main() {
	cliParser := cli.NewApp()
	cliParser.Name = "structured-data-server"
	cliParser.Usage = "structured data access service for wiki applications"
	cliParser.Version = "1.0"

	cliParser.Commands = []cli.Command{
		{
			Name:  "env",
			Usage: "Print all environment variables",
			Action: func(ctx *cli.Context) error {
				config.PrintEnvironment()
				return nil
			},
		},
	}

	cliParser.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "conf",
			Usage: "Path to yaml configuration file.",
		},
	}

	cliParser.Action = func(c *cli.Context) error {
		opts := config.NewCommandLineOpts(c)
		conf := config.NewAppConfiguration(opts)
		return serve(conf)
	}

	if err := cliParser.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func serve(conf config.AppConfiguration) error {
	db, err := conf.DatabaseConnection.GetDatabaseHandle()
	if err != nil {
		logger.Error("Could not connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	d := dao.NewDataAccessLayer(db, dao.WithLogger(logger))

	var queue events.Publisher
	if len(conf.EventQueue.KafkaAddrs) > 0 {
		queue, err = events.NewAsyncProducer(conf.EventQueue.KafkaAddrs,
			events.WithLogger(logger),
			events.WithTopic(conf.EventQueue.Topic),
			events.WithPublishActions(conf.EventQueue.PublishSuccessActions, conf.EventQueue.PublishFailureActions))
		if err != nil {
			logger.Error("Could not connect to kafka", zap.Error(err))
			return err
		}
	} else {
		queue = events.NewFakeAsyncProducer(logger)
	}

	authz := auth.NewRightsAuthorization(d, auth.WithLogger(logger))
	app := server.NewAppServer(conf.ServerSettings, d, authz, queue)

	logger.Info("server starting", zap.String("addr", app.Addr))
	httpServer := &http.Server{
		Addr:    app.Addr,
		Handler: app,
	}
	err = httpServer.ListenAndServe()
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	return err
}
