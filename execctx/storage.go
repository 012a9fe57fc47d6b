// Copyright 2026 The valence-net Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package execctx

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/valence-net/zk-coprocessor/coprocerr"
)

var storagePrefix = []byte("execctx-storage")

// image is the decoded shape of a controller's storage blob: a flat
// path-to-bytes map standing in for the original's FAT-style filesystem
// image, capped in aggregate at MaxStorageBytes.
type image struct {
	Files map[string][]byte `msgpack:"files"`
}

func (c *Context) loadImage() (image, error) {
	raw, ok, err := c.backend.GetBulk(storagePrefix, c.ControllerID[:])
	if err != nil {
		return image{}, fmt.Errorf("%w: execctx: load storage image: %v", coprocerr.ErrBackend, err)
	}
	if !ok {
		return image{Files: map[string][]byte{}}, nil
	}
	var img image
	if err := msgpack.Unmarshal(raw, &img); err != nil {
		return image{}, fmt.Errorf("%w: execctx: decode storage image: %v", coprocerr.ErrSerialization, err)
	}
	if img.Files == nil {
		img.Files = map[string][]byte{}
	}
	return img, nil
}

func (img image) size() int {
	total := 0
	for path, data := range img.Files {
		total += len(path) + len(data)
	}
	return total
}

func (c *Context) storePermission() Permission {
	return Permission{Kind: CircuitStorageWrite, Target: c.ControllerID}
}

// GetStorage returns the bytes stored at path within this controller's
// storage image.
func (c *Context) GetStorage(path string) ([]byte, bool, error) {
	img, err := c.loadImage()
	if err != nil {
		return nil, false, err
	}
	data, ok := img.Files[path]
	return data, ok, nil
}

// SetStorage writes data at path within this controller's storage image,
// gated by CircuitStorageWrite.
func (c *Context) SetStorage(path string, data []byte) error {
	if err := c.Ensure(c.storePermission()); err != nil {
		return err
	}

	img, err := c.loadImage()
	if err != nil {
		return err
	}
	img.Files[path] = data

	if img.size() > MaxStorageBytes {
		return fmt.Errorf("%w: execctx: storage image would exceed %d bytes", coprocerr.ErrCapacityExceeded, MaxStorageBytes)
	}

	raw, err := msgpack.Marshal(&img)
	if err != nil {
		return fmt.Errorf("%w: execctx: encode storage image: %v", coprocerr.ErrSerialization, err)
	}
	if err := c.backend.SetBulk(storagePrefix, c.ControllerID[:], raw); err != nil {
		return fmt.Errorf("%w: execctx: persist storage image: %v", coprocerr.ErrBackend, err)
	}
	return nil
}

// GetRawStorage returns the controller's storage blob exactly as stored,
// without decoding it into named files.
func (c *Context) GetRawStorage() ([]byte, bool, error) {
	raw, ok, err := c.backend.GetBulk(storagePrefix, c.ControllerID[:])
	if err != nil {
		return nil, false, fmt.Errorf("%w: execctx: get raw storage: %v", coprocerr.ErrBackend, err)
	}
	return raw, ok, nil
}

// SetRawStorage overwrites the controller's storage blob with data
// unfiltered, gated by CircuitStorageWrite.
func (c *Context) SetRawStorage(data []byte) error {
	if err := c.Ensure(c.storePermission()); err != nil {
		return err
	}
	if len(data) > MaxStorageBytes {
		return fmt.Errorf("%w: execctx: raw storage write of %d bytes exceeds %d byte cap", coprocerr.ErrCapacityExceeded, len(data), MaxStorageBytes)
	}
	if err := c.backend.SetBulk(storagePrefix, c.ControllerID[:], data); err != nil {
		return fmt.Errorf("%w: execctx: persist raw storage: %v", coprocerr.ErrBackend, err)
	}
	return nil
}
