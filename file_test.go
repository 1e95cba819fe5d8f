package fat12

import (
	"errors"
	"io"
	"os"
	"reflect"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
)

// fakeFileInfo is a minimal FileInfo carrying only a name and size.
type fakeFileInfo struct {
	name     string
	fileSize int64
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.fileSize }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() interface{}   { return nil }

var errFileTests = errors.New("a device error")

func TestFile_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockvolume(ctrl)
	f := &File{fs: mock, startBlock: 2, stat: fakeFileInfo{name: "A.TXT", fileSize: 10}}

	mock.EXPECT().
		readFileAt(fatEntry(2), int64(10), int64(0), int64(4)).
		Return([]byte("abcd"), nil)
	mock.EXPECT().
		readFileAt(fatEntry(2), int64(10), int64(4), int64(4)).
		Return([]byte("efgh"), nil)

	p := make([]byte, 4)
	n, err := f.Read(p)
	if err != nil || n != 4 || string(p) != "abcd" {
		t.Fatalf("Read() = %d, %v, %q, want 4, nil, abcd", n, err, p)
	}

	// The cursor must have advanced.
	n, err = f.Read(p)
	if err != nil || n != 4 || string(p) != "efgh" {
		t.Fatalf("Read() = %d, %v, %q, want 4, nil, efgh", n, err, p)
	}
}

func TestFile_Read_atEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := &File{fs: NewMockvolume(ctrl), stat: fakeFileInfo{fileSize: 10}, offset: 10}

	if _, err := f.Read(make([]byte, 4)); err != io.EOF {
		t.Errorf("Read() error = %v, want io.EOF", err)
	}
}

func TestFile_Read_deviceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockvolume(ctrl)
	f := &File{fs: mock, stat: fakeFileInfo{fileSize: 10}}

	mock.EXPECT().
		readFileAt(fatEntry(0), int64(10), int64(0), int64(4)).
		Return([]byte("ab"), errFileTests)

	n, err := f.Read(make([]byte, 4))
	if n != 2 {
		t.Errorf("Read() = %d bytes, want the partial 2", n)
	}
	if !errors.Is(err, ErrReadFile) || !errors.Is(err, errFileTests) {
		t.Errorf("Read() error = %v, want ErrReadFile wrapping the cause", err)
	}
}

func TestFile_ReadAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockvolume(ctrl)
	f := &File{fs: mock, stat: fakeFileInfo{fileSize: 10}}

	mock.EXPECT().
		readFileAt(fatEntry(0), int64(10), int64(3), int64(4)).
		Return([]byte("defg"), nil)

	p := make([]byte, 4)
	n, err := f.ReadAt(p, 3)
	if err != nil || n != 4 || string(p) != "defg" {
		t.Fatalf("ReadAt() = %d, %v, %q, want 4, nil, defg", n, err, p)
	}

	// ReadAt must not move the cursor.
	if f.offset != 0 {
		t.Errorf("ReadAt() moved the cursor to %d", f.offset)
	}

	if _, err := f.ReadAt(p, 10); err != io.EOF {
		t.Errorf("ReadAt() past the end error = %v, want io.EOF", err)
	}
}

func TestFile_Seek(t *testing.T) {
	tests := []struct {
		name    string
		offset  int64
		whence  int
		current int64
		want    int64
		wantErr error
	}{
		{name: "from start", offset: 3, whence: io.SeekStart, want: 3},
		{name: "from current", offset: 2, whence: io.SeekCurrent, current: 3, want: 5},
		{name: "from end", offset: -4, whence: io.SeekEnd, want: 6},
		{name: "invalid whence", offset: 0, whence: 42, wantErr: syscall.EINVAL},
		{name: "before the file", offset: -1, whence: io.SeekStart, wantErr: afero.ErrOutOfRange},
		{name: "past the file", offset: 11, whence: io.SeekStart, wantErr: afero.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{stat: fakeFileInfo{fileSize: 10}, offset: tt.current}

			got, err := f.Seek(tt.offset, tt.whence)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Seek() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Seek() unexpected error = %v", err)
			}
			if got != tt.want || f.offset != tt.want {
				t.Errorf("Seek() = %d (offset %d), want %d", got, f.offset, tt.want)
			}
		})
	}
}

func TestFile_Readdir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockvolume(ctrl)
	entries := []DirEntry{
		dirEntryNamed("ONE", "TXT", 0),
		dirEntryNamed("TWO", "TXT", 0),
		dirEntryNamed("THREE", "TXT", 0),
	}
	mock.EXPECT().readRoot().Return(entries, nil).AnyTimes()

	f := &File{fs: mock, isDirectory: true, stat: rootDirInfo{}}

	infos, err := f.Readdir(2)
	if err != nil {
		t.Fatalf("Readdir(2) unexpected error = %v", err)
	}
	names := []string{infos[0].Name(), infos[1].Name()}
	if !reflect.DeepEqual(names, []string{"ONE.TXT", "TWO.TXT"}) {
		t.Errorf("Readdir(2) = %v", names)
	}

	// The remainder plus io.EOF.
	infos, err = f.Readdir(2)
	if err != io.EOF {
		t.Fatalf("Readdir(2) error = %v, want io.EOF", err)
	}
	if len(infos) != 1 || infos[0].Name() != "THREE.TXT" {
		t.Errorf("Readdir(2) tail = %v", infos)
	}
}

func TestFile_Readdir_notADirectory(t *testing.T) {
	f := &File{stat: fakeFileInfo{}}

	if _, err := f.Readdir(-1); !errors.Is(err, syscall.ENOTDIR) {
		t.Errorf("Readdir() error = %v, want ENOTDIR", err)
	}
}

func TestFile_writeOperations(t *testing.T) {
	f := &File{stat: fakeFileInfo{fileSize: 10}}

	if _, err := f.Write([]byte("x")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Write() error = %v, want ErrReadOnly", err)
	}
	if _, err := f.WriteAt([]byte("x"), 0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("WriteAt() error = %v, want ErrReadOnly", err)
	}
	if _, err := f.WriteString("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("WriteString() error = %v, want ErrReadOnly", err)
	}
	if err := f.Truncate(0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Truncate() error = %v, want ErrReadOnly", err)
	}
}

func TestFile_Close(t *testing.T) {
	f := &File{
		fs:         &Fs{},
		path:       "A.TXT",
		isReadOnly: true,
		startBlock: 5,
		stat:       fakeFileInfo{},
		offset:     7,
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close() unexpected error = %v", err)
	}
	if !reflect.DeepEqual(*f, File{}) {
		t.Errorf("Close() did not reset all fields: %+v", *f)
	}
}
