// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/progress"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStreams(in string) (fsutil.Streams, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	return fsutil.Streams{In: strings.NewReader(in), Out: &out, Err: &errOut}, &out, &errOut
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	b, err := afero.ReadFile(fs, name)
	require.NoError(t, err)

	return string(b)
}

func TestJobRun(t *testing.T) {
	const content = "alpha\nbravo\ncharlie\ndelta"

	testCases := []struct {
		name      string
		job       Job
		want      string
		wantBytes int64
	}{
		{
			name: "whole file",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}},
			want: content,
		},
		{
			name: "first two lines",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}, Lines: 2},
			want: "alpha\nbravo\n",
		},
		{
			name: "more lines than the file has",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}, Lines: 10},
			want: content,
		},
		{
			name: "range",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}, Offset: 6, Length: 5},
			want: "bravo",
		},
		{
			name: "offset to end",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}, Offset: 20},
			want: "delta",
		},
		{
			name: "length past end",
			job:  Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/m1.txt", "/m2.txt"}, Offset: 20, Length: 100},
			want: "delta",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/in.txt", []byte(content), 0o644))

			s, out, _ := testStreams("")

			n, err := tc.job.Run(context.Background(), fs, s)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), n)

			assert.Equal(t, tc.want, readFile(t, fs, "/out.txt"))
			assert.Equal(t, tc.want, readFile(t, fs, "/m1.txt"), "mirror holds exactly the bytes read")
			assert.Equal(t, tc.want, readFile(t, fs, "/m2.txt"))
			assert.Zero(t, out.Len())
		})
	}
}

func TestJobRun_StdStreams(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, out, errOut := testStreams("from stdin\nsecond\n")

	job := Job{Name: "std", Source: "-", Mirrors: []string{fsutil.StderrSink, "/copy.txt"}, Lines: 1}

	n, err := job.Run(context.Background(), fs, s)
	require.NoError(t, err)
	assert.Equal(t, int64(len("from stdin\n")), n)

	assert.Equal(t, "from stdin\n", out.String())
	assert.Equal(t, "from stdin\n", errOut.String())
	assert.Equal(t, "from stdin\n", readFile(t, fs, "/copy.txt"))
}

func TestJobRun_Append(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in.txt", []byte("abc"), 0o644))

	s, _, _ := testStreams("")
	job := Job{Source: "/in.txt", Primary: "/out.txt", Mirrors: []string{"/log.txt"}, Append: true}

	for range 2 {
		_, err := job.Run(context.Background(), fs, s)
		require.NoError(t, err)
	}

	assert.Equal(t, "abcabc", readFile(t, fs, "/out.txt"))
	assert.Equal(t, "abcabc", readFile(t, fs, "/log.txt"))

	job.Append = false
	_, err := job.Run(context.Background(), fs, s)
	require.NoError(t, err)
	assert.Equal(t, "abc", readFile(t, fs, "/log.txt"))
}

func TestJobRun_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in.txt", []byte("abc"), 0o644))

	s, _, _ := testStreams("not seekable")

	_, err := Job{Source: "/missing.txt"}.Run(context.Background(), fs, s)
	require.ErrorIs(t, err, fsutil.ErrOpenSource)

	_, err = Job{Name: "stdin range", Source: "-", Offset: 3}.Run(context.Background(), fs, s)
	require.ErrorIs(t, err, ErrNotSeekable)
	assert.Contains(t, err.Error(), `job "stdin range"`)

	_, err = Job{Source: "/in.txt", Mirrors: []string{"/m.txt"}}.Run(context.Background(), afero.NewReadOnlyFs(fs), s)
	require.ErrorIs(t, err, fsutil.ErrOpenSink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Job{Source: "/in.txt", Primary: "/out.txt"}.Run(ctx, fs, s)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCopyLines_ReadAheadIsNotMirrored(t *testing.T) {
	var mirror, dst bytes.Buffer

	br := bufio.NewReaderSize(strings.NewReader("one\ntwo\nthree"), 64)
	tee := teeio.NewBufReader(br, &mirror)

	n, err := CopyLines(context.Background(), &dst, tee, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, "one\n", dst.String())
	assert.Equal(t, "one\n", mirror.String())
	assert.Positive(t, br.Buffered(), "the source buffered past the first line")

	n, err = CopyLines(context.Background(), &dst, tee, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(len("two\nthree")), n)
	assert.Equal(t, "one\ntwo\nthree", mirror.String())
}

func TestPlanRun(t *testing.T) {
	fs := stubFs(t)
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("first"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/c.txt", []byte("third"), 0o644))

	p := &Plan{Jobs: []Job{
		{Name: "a", Source: "/a.txt", Primary: "/out.txt", Mirrors: []string{"/log.txt"}, Append: true},
		{Name: "b", Source: "/b.txt", Primary: "/out.txt", Append: true},
		{Name: "c", Source: "/c.txt", Primary: "/out.txt", Mirrors: []string{"/log.txt"}, Append: true},
	}}

	s, _, _ := testStreams("")

	reporter := progress.NewChannelReporter(16)

	var events []string

	reporter.Listen(progress.ListenerFunc(func(ev progress.Event) {
		events = append(events, ev.Job+" "+ev.Type.String())
	}))

	results, err := p.Run(context.Background(), s, reporter)
	reporter.Close()
	require.ErrorIs(t, err, fsutil.ErrOpenSource)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, int64(5), results[0].Bytes)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, "firstthird", readFile(t, fs, "/out.txt"))
	assert.Equal(t, "firstthird", readFile(t, fs, "/log.txt"))

	assert.Equal(t, []string{
		"a started", "a completed",
		"b started", "b failed",
		"c started", "c completed",
	}, events)
}

func TestPlanRun_Cancelled(t *testing.T) {
	stubFs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Plan{Jobs: []Job{{Name: "a", Source: "/a.txt"}, {Name: "b", Source: "/b.txt"}}}
	s, _, _ := testStreams("")

	reporter := progress.NewChannelReporter(16)

	results, err := p.Run(ctx, s, reporter)
	reporter.Close()

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)

	var skipped []string
	for ev := range reporter.Events() {
		assert.Equal(t, progress.EventSkipped, ev.Type)
		assert.ErrorIs(t, ev.Err, context.Canceled)

		skipped = append(skipped, ev.Job)
	}

	assert.Equal(t, []string{"a", "b"}, skipped)
}

func TestPlanRun_CancelledListenerSeesSkips(t *testing.T) {
	stubFs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 40)
	for i := range jobs {
		jobs[i] = Job{Name: fmt.Sprintf("job-%d", i+1), Source: "/in.txt"}
	}

	s, _, _ := testStreams("")
	reporter := progress.NewChannelReporter(2 * len(jobs))

	var skipped int

	reporter.Listen(progress.ListenerFunc(func(ev progress.Event) {
		if ev.Type == progress.EventSkipped {
			skipped++
		}
	}))

	_, err := (&Plan{Jobs: jobs}).Run(ctx, s, reporter)
	reporter.Close()

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(jobs), skipped, "every skipped job reaches the listener")
}
