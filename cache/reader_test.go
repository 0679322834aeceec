package cache_test

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/y86sim/cache"
	"github.com/sarchlab/y86sim/insts"
	"github.com/sarchlab/y86sim/loader"
)

var _ = Describe("Reader", func() {
	var (
		code []byte
		prog *loader.Program
		c    *cache.Cache
	)

	BeforeEach(func() {
		code = make([]byte, 0, 40)
		for i := 0; i < 4; i++ {
			// irmovq $i, %rax
			code = append(code, 0x30, 0xF0, byte(i), 0, 0, 0, 0, 0, 0, 0)
		}

		var err error
		prog, err = loader.FromBytes("test", code)
		Expect(err).NotTo(HaveOccurred())

		config := cache.Config{
			Size:          256,
			Associativity: 2,
			BlockSize:     16,
			HitLatency:    1,
			MissLatency:   10,
		}
		c = cache.New(config, prog)
	})

	It("should stream the image across block boundaries", func() {
		data, err := io.ReadAll(cache.NewReader(c, 0, prog.Size()))
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(code))

		stats := c.Stats()
		Expect(stats.Misses).To(Equal(uint64(3)))
	})

	It("should start at an offset and stop at the limit", func() {
		r := cache.NewReader(c, 30, 35)

		data, err := io.ReadAll(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(code[30:35]))
		Expect(r.Addr()).To(Equal(uint64(35)))
	})

	It("should feed the decoder the same instructions as the raw image", func() {
		direct := insts.NewDecoder(bytes.NewReader(code[10:]), 10)
		cached := insts.NewDecoder(cache.NewReader(c, 10, prog.Size()), 10)

		for {
			want, wantErr := direct.Next()
			got, gotErr := cached.Next()

			if wantErr != nil {
				Expect(gotErr).To(Equal(wantErr))
				Expect(got).To(BeNil())
				break
			}

			Expect(gotErr).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		}

		Expect(cached.PC()).To(Equal(uint64(40)))
		Expect(c.Stats().Hits).To(BeNumerically(">", 0))
	})
})
