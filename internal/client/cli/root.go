package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fluxpad/fluxpad/internal/client/guard"
)

func (a *App) getStatus() string {
	if id := a.guard.Identity(); id != nil {
		return fmt.Sprintf("(%s)", id.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to FluxPad CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	// resolve the stored session before the first prompt
	switch route, _ := a.guard.EnterProtected(ctx); route {
	case guard.RouteDashboard:
		fmt.Printf("Signed in as %s\n", a.guard.Identity().Email)
	case guard.RouteLogin:
		fmt.Println("Not signed in. Use 'login' or 'register'.")
	default:
		fmt.Println("Server unreachable; sign-in state unknown.")
	}

	for {
		fmt.Printf("fluxpad %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, datasets, queries, logout, delete, ping, exit")
			} else {
				fmt.Println("Available commands: register, login, ping, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "datasets":
			a.listDatasets(ctx)
		case "queries":
			a.queryHistory(ctx)
		case "logout":
			a.Logout(ctx)
		case "delete":
			a.deleteAccount(ctx)
		case "ping":
			if err := a.api.Ping(ctx); err != nil {
				fmt.Println("Server unavailable:", err)
			} else {
				fmt.Println("Server is up")
			}
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
