package storage

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ZipDir archives every regular file under src into dst, with paths relative
// to src in lexical order. dst is replaced if it exists & must not be inside src.
func ZipDir(src, dst string) error {
	files := []string{}
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	err = os.MkdirAll(filepath.Dir(dst), 0755)
	if err != nil {
		return err
	}

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	for _, path := range files {
		err = addFile(zw, src, path)
		if err != nil {
			zw.Close()
			out.Close()
			os.Remove(tmp)
			return err
		}
	}

	err = zw.Close()
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	err = out.Close()
	if err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dst)
}

func addFile(zw *zip.Writer, root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
