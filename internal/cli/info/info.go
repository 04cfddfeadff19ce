package info

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/output"
)

func init() {
	cmd := root.Command("info", "Display information about the asdp client")

	cmd.Action(func(_ *kingpin.ParseContext) error {
		sess, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to init the session")
			return err
		}
		defer sess.Close()
		home, err := asdp.GetHome()
		if err != nil {
			return err
		}
		s := sess.Settings
		output.SectionTitle("asdp " + asdp.Version)
		log.WithFields(log.Fields{
			"type":             "table",
			"home":             home,
			"settings":         s.Path(),
			"api_base_url":     sess.Client.BaseURL(),
			"output_dir":       sess.Artifacts.Dir(),
			"timeout":          s.Timeout().String(),
			"extended_payload": s.ExtendedPayload,
			"log_bodies":       s.LogBodies,
		}).Info("info")
		return nil
	})
}
