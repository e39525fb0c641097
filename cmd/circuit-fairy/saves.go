package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"hilbert-circuits/saves"
)

var dirFlag = &cli.StringFlag{
	Name:     "dir",
	Usage:    "save database directory",
	EnvVars:  []string{"CIRCUIT_SAVE_DIR"},
	Required: true,
}

var savesCommand = &cli.Command{
	Name:  "saves",
	Usage: "inspect and edit save slots",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "show every used slot",
			Flags:  []cli.Flag{dirFlag},
			Action: withStore(listSaves),
		},
		{
			Name:      "export",
			Usage:     "print a slot as JSON",
			ArgsUsage: "<slot>",
			Flags:     []cli.Flag{dirFlag},
			Action:    withStore(exportSave),
		},
		{
			Name:      "import",
			Usage:     "write a JSON save into a slot",
			ArgsUsage: "<slot> <file.json>",
			Flags:     []cli.Flag{dirFlag},
			Action:    withStore(importSave),
		},
		{
			Name:   "reset",
			Usage:  "start a new game in the auto-save slot",
			Flags:  []cli.Flag{dirFlag},
			Action: withStore(resetSaves),
		},
	},
}

func withStore(fn func(c *cli.Context, s *saves.BadgerStore) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := saves.OpenBadger(saves.BadgerConfig{Path: c.String("dir")})
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(c, s)
	}
}

func slotArg(c *cli.Context) (int, error) {
	if c.Args().Len() < 1 {
		return 0, errors.New("i need you to tell me which slot")
	}
	slot, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("i didn't understand your slot: %w", err)
	}
	return slot, nil
}

func listSaves(c *cli.Context, s *saves.BadgerStore) error {
	slots, err := s.Slots(c.Context)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		info, err := saves.SlotInfo(c.Context, s, slot)
		if err != nil {
			return err
		}
		name := strconv.Itoa(slot)
		if slot == saves.AutoSaveSlot {
			name += " (auto)"
		}
		fmt.Fprintf(c.App.Writer, "%s\tlevel %d\t%s\n", name, info.LevelIndex+1, time.UnixMilli(info.Timestamp).UTC().Format(time.RFC3339))
	}
	return nil
}

func exportSave(c *cli.Context, s *saves.BadgerStore) error {
	slot, err := slotArg(c)
	if err != nil {
		return err
	}
	data, err := s.Load(c.Context, slot)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func importSave(c *cli.Context, s *saves.BadgerStore) error {
	slot, err := slotArg(c)
	if err != nil {
		return err
	}
	if c.Args().Len() < 2 {
		return errors.New("i need you to give me a JSON file to import")
	}
	raw, err := os.ReadFile(c.Args().Get(1))
	if err != nil {
		return err
	}
	var data saves.SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to read save %s: %w", c.Args().Get(1), err)
	}
	return s.Save(c.Context, slot, data)
}

func resetSaves(c *cli.Context, s *saves.BadgerStore) error {
	return saves.Reset(c.Context, s, time.Now())
}
