package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "simulate",
		Usage: "play random Mexicano rounds and report sit-out fairness",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "players",
				Value: 10,
				Usage: "number of players",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 8,
				Usage: "number of rounds to play",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed, 0 seeds from the clock",
			},
			&cli.BoolFlag{
				Name:  "avoid-repeat-partners",
				Value: true,
				Usage: "split teams that drew together last round",
			},
		},
		Action: func(c *cli.Context) error {
			result, err := simulate(&options{
				Players:             c.Int("players"),
				Rounds:              c.Int("rounds"),
				Seed:                c.Int64("seed"),
				AvoidRepeatPartners: c.Bool("avoid-repeat-partners"),
			})
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return result.print(c.App.Writer)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
