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

package expect

import (
	"encoding/hex"
	"math/big"
	"reflect"
)

// number is the canonical form of every integer value.
type number string

var bigIntType = reflect.TypeOf(big.Int{})

// normalize maps v to a canonical form so values compare by meaning:
// integers of any width and *big.Int compare by value, byte arrays and
// byte slices compare as 0x-hex strings, and structs compare by their
// exported fields.
func normalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return normalizeValue(reflect.ValueOf(v))
}

func normalizeValue(rv reflect.Value) interface{} {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalizeValue(rv.Elem())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number(big.NewInt(rv.Int()).String())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number(new(big.Int).SetUint64(rv.Uint()).String())

	case reflect.String:
		return rv.String()

	case reflect.Bool:
		return rv.Bool()

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return "0x" + hex.EncodeToString(b)
		}
		return normalizeList(rv)

	case reflect.Slice:
		if rv.IsNil() {
			return []interface{}{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return "0x" + hex.EncodeToString(rv.Bytes())
		}
		return normalizeList(rv)

	case reflect.Map:
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, _ := normalizeValue(iter.Key()).(string)
			if key == "" {
				key = iter.Key().String()
			}
			m[key] = normalizeValue(iter.Value())
		}
		return m

	case reflect.Struct:
		if rv.Type() == bigIntType {
			n := new(big.Int)
			if rv.CanAddr() {
				n = rv.Addr().Interface().(*big.Int)
			} else {
				copied := rv.Interface().(big.Int)
				n.Set(&copied)
			}
			return number(n.String())
		}
		m := make(map[string]interface{}, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if field.PkgPath != "" {
				continue
			}
			m[field.Name] = normalizeValue(rv.Field(i))
		}
		return m
	}

	return rv.Interface()
}

func normalizeList(rv reflect.Value) []interface{} {
	list := make([]interface{}, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		list = append(list, normalizeValue(rv.Index(i)))
	}
	return list
}
