package urlparse

import (
	"reflect"
	"testing"
)

func TestParseQSD(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		plusToSpace bool
		sanitize    bool
		want        QueryArgs
	}{
		{
			name:     "empty",
			raw:      "",
			sanitize: true,
			want:     NewQueryArgs(),
		},
		{
			name:     "plain arguments",
			raw:      "a=1&B=Two&empty=&flag",
			sanitize: true,
			want: QueryArgs{
				QSD:   map[string]string{"a": "1", "b": "Two", "empty": "", "flag": ""},
				Plus:  map[string]string{},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
		{
			name:     "plus kept by default",
			raw:      "msg=a+b%20c",
			sanitize: true,
			want: QueryArgs{
				QSD:   map[string]string{"msg": "a+b c"},
				Plus:  map[string]string{},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
		{
			name:        "plus to space",
			raw:         "my+msg=a+b%2Bc",
			plusToSpace: true,
			sanitize:    true,
			want: QueryArgs{
				QSD:   map[string]string{"my msg": "a b+c"},
				Plus:  map[string]string{},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
		{
			name:        "leading plus is a sigil with plus to space",
			raw:         "+Header=1",
			plusToSpace: true,
			sanitize:    true,
			want: QueryArgs{
				QSD:   map[string]string{"+header": "1"},
				Plus:  map[string]string{"Header": "1"},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
		{
			name:     "sigil groups keep case",
			raw:      "+X-Token=abc&-Drop=&:Map=Dest&%2BEsc=1",
			sanitize: true,
			want: QueryArgs{
				QSD:   map[string]string{"+x-token": "abc", "-drop": "", ":map": "Dest", "+esc": "1"},
				Plus:  map[string]string{"X-Token": "abc", "Esc": "1"},
				Minus: map[string]string{"Drop": ""},
				Colon: map[string]string{"Map": "Dest"},
			},
		},
		{
			name: "unsanitized keys",
			raw:  " Key =v",
			want: QueryArgs{
				QSD:   map[string]string{" Key ": "v"},
				Plus:  map[string]string{},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
		{
			name:     "value keeps extra equals",
			raw:      "token=abc==&=orphan",
			sanitize: true,
			want: QueryArgs{
				QSD:   map[string]string{"token": "abc=="},
				Plus:  map[string]string{},
				Minus: map[string]string{},
				Colon: map[string]string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQSD(tt.raw, tt.plusToSpace, tt.sanitize)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQSD(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseQSDPartition(t *testing.T) {
	raws := []string{
		"a=1&+b=2&-c=3&:d=4",
		"+A=1&+a=2",
		"plain=1&other=2",
		"",
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			args := ParseQSD(raw, false, false)

			plain := 0
			for key := range args.QSD {
				switch key[0] {
				case SigilPlus, SigilMinus, SigilColon:
				default:
					plain++
				}
			}

			total := len(args.Plus) + len(args.Minus) + len(args.Colon) + plain
			if total != len(args.QSD) {
				t.Errorf("ParseQSD(%q) partition = %d, want %d", raw, total, len(args.QSD))
			}

			for key, value := range args.Plus {
				if args.QSD["+"+key] != value {
					t.Errorf("ParseQSD(%q) qsd[+%s] = %v, want %v", raw, key, args.QSD["+"+key], value)
				}
			}
		})
	}
}
