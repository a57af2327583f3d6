package main

import (
	"fmt"
	nhttp "net/http"
	"os"
	"path"
	"time"

	"github.com/kabukky/httpscerts"
	"github.com/urfave/cli/v2"

	"github.com/zkceremonies/setupboard/http"
)

func serveCmd(c *cli.Context) error {
	l := newLogger(c)
	cl, closer, err := makeClient(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	listen := c.String(listenFlag.Name)
	if cfg.Listen != "" && !c.IsSet(listenFlag.Name) {
		listen = cfg.Listen
	}

	srv := &nhttp.Server{
		Addr:         listen,
		Handler:      http.New(cl, l),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if !c.Bool(tlsFlag.Name) {
		l.Infow("dashboard API listening", "addr", listen)
		return srv.ListenAndServe()
	}

	dir := c.String(tlsDirFlag.Name)
	certPath := path.Join(dir, "server.crt")
	keyPath := path.Join(dir, "server.key")
	if httpscerts.Check(certPath, keyPath) != nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := httpscerts.Generate(certPath, keyPath, listen); err != nil {
			return fmt.Errorf("generating self-signed certificate: %w", err)
		}
		l.Infow("generated self-signed certificate", "cert", certPath)
	}
	l.Infow("dashboard API listening", "addr", listen, "tls", true)
	return srv.ListenAndServeTLS(certPath, keyPath)
}
