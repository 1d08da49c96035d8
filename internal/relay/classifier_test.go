package relay

import "testing"

func TestNeedsHuman(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "greeting never escalates",
			text: "hello",
			want: false,
		},
		{
			name: "greeting wins even when long",
			text: "hello hello hello hello hello hello hello hello hello hello hello hello",
			want: false,
		},
		{
			name: "farewell never escalates",
			text: "bye",
			want: false,
		},
		{
			name: "long by word count",
			text: "I am sending a very long message about my server and its current trouble",
			want: true,
		},
		{
			name: "long by character count",
			text: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			want: true,
		},
		{
			name: "question mark",
			text: "is it broken?",
			want: true,
		},
		{
			name: "interrogative token",
			text: "why does it crash",
			want: true,
		},
		{
			name: "help keyword",
			text: "please explain the error",
			want: true,
		},
		{
			name: "keyword don't know",
			text: "I don't know the password",
			want: true,
		},
		{
			name: "plain chit-chat",
			text: "ok then",
			want: false,
		},
		{
			name: "long question with keyword",
			text: "I have a problem and don't know how to configure the server, can someone explain?",
			want: true,
		},
		{
			name: "case insensitive",
			text: "WHY IS IT DOWN",
			want: true,
		},
		{
			name: "empty message",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsHuman(tt.text); got != tt.want {
				t.Errorf("NeedsHuman(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
