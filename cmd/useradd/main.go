// Command useradd creates an account from the terminal, typically the first
// administrator.
//
//	useradd -u admin -admin [-inactive] [-d DSN]
//
// The password is read twice without echo.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/flagx"
	"github.com/Sonchiik/Workout-Traker/internal/prompt"
	"github.com/Sonchiik/Workout-Traker/internal/server"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/config"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

type options struct {
	userName string
	admin    bool
	inactive bool
}

type registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

func parseOptions(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.userName, "u", "", "username")
	fs.BoolVar(&o.admin, "admin", false, "grant administrator rights")
	fs.BoolVar(&o.inactive, "inactive", false, "create the account inactive")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u", "-admin", "-inactive"})); err != nil {
		return o, fmt.Errorf("useradd: flags: %w", err)
	}
	return o, nil
}

// run asks for whatever the flags left out and registers the account.
func run(ctx context.Context, o options, r registrar, in *bufio.Reader, out io.Writer, password func(io.Writer) ([]byte, error)) (*models.User, error) {
	if o.userName == "" {
		name, err := prompt.Text(in, "Username", out)
		if err != nil {
			return nil, err
		}
		o.userName = name
	}

	pw, err := password(out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)

	return r.Register(ctx, services.RegisterInput{
		UserName: o.userName,
		Password: string(pw),
		IsActive: !o.inactive,
		IsAdmin:  o.admin,
	})
}

func main() {
	ctx := context.Background()

	o, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := server.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	users := services.NewUserService(db, repomanager.NewPostgresRepositoryManager(), tokens, cfg)

	fd := int(os.Stdin.Fd())
	u, err := run(ctx, o, users, bufio.NewReader(os.Stdin), os.Stdout, func(w io.Writer) ([]byte, error) {
		return prompt.NewPassword(fd, w)
	})
	if err != nil {
		log.Printf("useradd: %v", err)
		db.Close()
		os.Exit(1)
	}
	fmt.Printf("created user %q (id %d, admin=%t, active=%t)\n", u.UserName, u.ID, u.IsAdmin, u.IsActive)
}
