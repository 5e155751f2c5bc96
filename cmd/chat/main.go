package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"ai-finance-assistant-be/internal/bootstrap"
	"ai-finance-assistant-be/internal/config"
)

const userID = "demo_user"

var (
	banner    = color.New(color.FgCyan, color.Bold)
	promptFmt = color.New(color.FgGreen, color.Bold)
	replyFmt  = color.New(color.FgWhite)
	errFmt    = color.New(color.FgRed)
)

func main() {
	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	manager := container.Manager

	banner.Println(strings.Repeat("=", 60))
	banner.Println("AI Finance Assistant - Interactive Demo")
	banner.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Welcome! I'm your AI Finance Assistant.")
	fmt.Println("I can help with:")
	fmt.Println("  - Financial education (stocks, bonds, investing)")
	fmt.Println("  - Portfolio analysis")
	fmt.Println("  - Market insights")
	fmt.Println("  - Goal planning")
	fmt.Println("  - Tax education")
	fmt.Println("  - Financial news analysis")
	fmt.Println()
	fmt.Println("Type 'exit' to quit, 'help' for examples")
	fmt.Println()

	manager.CreateSession(userID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptFmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "":
			continue
		case "exit":
			fmt.Println("\nThank you for using AI Finance Assistant!")
			return
		case "help":
			printHelp()
			continue
		}

		response := manager.ProcessMessage(context.Background(), userID, input)
		fmt.Println()
		replyFmt.Printf("Assistant: %s\n\n", response)
	}

	if err := scanner.Err(); err != nil {
		errFmt.Printf("Error reading input: %v\n", err)
	}
}

func printHelp() {
	fmt.Println(`
Example queries:
  - "Explain what stocks are"
  - "How do I start investing?"
  - "What's the difference between stocks and bonds?"
  - "Analyze my portfolio: AAPL 10, MSFT 5"
  - "What are index funds?"
  - "How do I plan for retirement?"
  - "Explain 401k vs IRA"
  - "What's happening in the stock market?"`)
	fmt.Println()
}
