// Package agent implements the AI assistant that answers questions
// about the latest holdings change report.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

const prompt = "etfmon> "

// Agent is the interactive assistant. It runs a single analyst chat
// seeded with the current change report so the model answers from the
// actual numbers instead of guessing.
type Agent struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
	// Report is the markdown change report given to the analyst as
	// grounding context.
	Report string
}

// New creates an Agent over the given change report.
func New(w io.Writer, r io.Reader, report string) *Agent {
	return &Agent{w: w, r: bufio.NewReader(r), Report: report}
}

// Start creates the analyst chat session.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
		You are an analyst of actively-managed ETFs. The user monitors the
		daily constituent changes of a few funds; below is today's change
		report (entered, exited and changed positions per fund).

		Answer the user's questions about these movements. Use Google
		Search when the user asks about the companies behind the tickers
		or for recent news that could explain a change. Stick to the
		figures in the report, do not invent positions.

		--- TODAY'S CHANGE REPORT ---
		` + a.Report}}},
	}

	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question to the analyst and returns its answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Run starts the interactive REPL session for the agent. Initial
// prompts, if any, are consumed before reading from the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to etfmon assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
