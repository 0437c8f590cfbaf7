package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cbodonnell/monopoly/pkg/game"
)

// Prompter asks prompts on a terminal and reads numbered answers.
// Anything that is not a number, including end of input, is answered with 0,
// which the game treats as invalid and replaces with the prompt's fallback.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) Choose(prompt game.Prompt) int {
	fmt.Fprintf(p.out, "\n%s\n", prompt.Question)
	for i, option := range prompt.Options {
		fmt.Fprintf(p.out, "[%d] %s\n", i+1, option)
	}
	return p.readChoice(fmt.Sprintf("Enter your choice (1-%d):> ", len(prompt.Options)))
}

// AskPlayerCount asks how many players will play. Invalid answers fall back to min.
func (p *Prompter) AskPlayerCount(min, max int) int {
	count := p.readChoice(fmt.Sprintf("\nHow many players? (%d-%d):> ", min, max))
	if count < min || count > max {
		fmt.Fprintf(p.out, "Invalid number of players. Defaulting to %d.\n", min)
		return min
	}
	return count
}

// AskText asks a free-form question and returns the trimmed answer.
func (p *Prompter) AskText(question string) string {
	fmt.Fprint(p.out, question)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (p *Prompter) readChoice(question string) int {
	answer := p.AskText(question)
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return 0
	}
	return choice
}
