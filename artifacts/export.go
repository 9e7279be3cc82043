/*
 * tokenspec - The token contract test harness
 *
 * Copyright The tokenspec Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/config"
)

// Export writes one <Name>.json ABI file per registered contract under
// cfg.Path and returns the written paths. When cfg.Clear is set the
// directory is removed first. Non-flat output mirrors each contract's
// source name.
func Export(r *Registry, cfg config.AbiExporter) ([]string, error) {
	if cfg.Path == "" {
		return nil, errors.New("empty ABI export path")
	}

	if cfg.Clear {
		if err := os.RemoveAll(cfg.Path); err != nil {
			return nil, errors.Wrapf(err, "failed to clear %s", cfg.Path)
		}
	}

	written := make([]string, 0)
	for _, name := range r.Names() {
		a, err := r.Get(name)
		if err != nil {
			return nil, err
		}

		dir := cfg.Path
		if !cfg.Flat && a.SourceName != "" {
			dir = filepath.Join(cfg.Path, filepath.FromSlash(a.SourceName))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", dir)
		}

		data, err := json.MarshalIndent(a.ABI(), "", strings.Repeat(" ", cfg.Spacing))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode ABI of %s", name)
		}

		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)
	}

	return written, nil
}
