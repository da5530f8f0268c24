package advisor

import "testing"

func TestCleanModelJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"amount":5}`, `{"amount":5}`},
		{"fenced", "```json\n{\"amount\":5}\n```", `{"amount":5}`},
		{"bare_fence", "```\n{\"amount\":5}\n```", `{"amount":5}`},
		{"surrounding_text", "Here you go:\n{\"amount\":5}\nHope that helps!", `{"amount":5}`},
		{"whitespace", "  \n{\"amount\":5}\n  ", `{"amount":5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanModelJSON(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
