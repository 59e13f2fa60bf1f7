package emulator

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

const REGISTER_COUNT = 16
const STACK_DEPTH = 16

// FLAG_REGISTER is VF, overwritten by every instruction that reports a
// carry, borrow, shifted out bit or collision.
const FLAG_REGISTER = 0xF

// Options configure a new machine. The zero value is usable.
type Options struct {
	// Logger receives the instruction trace at debug level. Defaults to a
	// logger that discards everything.
	Logger *log.Logger

	// Rand is the source for Cxkk. Defaults to a randomly seeded PCG.
	Rand *rand.Rand
}

// Chip8 is the complete machine state. Step() and Tick() are the only
// things that mutate it, nothing in here locks: if more than one goroutine
// needs the machine, access has to be serialized by the owner.
type Chip8 struct {
	// Chip8 has 16 8-bit registers
	registers [REGISTER_COUNT]byte

	// 4k bytes of memory
	memory memory

	// The Index Register is a special register used to store memory addresses for use in operations.
	// It's a 16-bit register, Fx1E saturates it at 0xFFFF instead of wrapping.
	indexRegister uint16

	// The Program Counter (PC) holds the address of the next instruction to execute
	programCounter uint16

	// 16-level stack used to hold return addresses
	stack [STACK_DEPTH]uint16

	// The Stack Pointer is the number of addresses on the stack
	stackPointer byte

	timers timers
	keypad Keypad
	screen FrameBuffer

	// the instruction being executed
	opcode uint16

	// program image, kept so Reset() can reload it
	program []byte

	// set by the first fault, the machine doesn't run past it
	fault *Fault

	rand   *rand.Rand
	logger *log.Logger
}

// New returns a machine with the font table loaded and no program.
func New(opts Options) *Chip8 {
	c8 := &Chip8{
		rand:   opts.Rand,
		logger: opts.Logger,
	}

	if c8.rand == nil {
		c8.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c8.logger == nil {
		c8.logger = log.NewNop()
	}

	c8.initialise()

	return c8
}

func (c8 *Chip8) initialise() {
	c8.registers = [REGISTER_COUNT]byte{}
	c8.memory.reset()
	c8.stack = [STACK_DEPTH]uint16{}
	c8.stackPointer = 0
	c8.indexRegister = 0
	c8.opcode = 0
	c8.fault = nil
	c8.timers.reset()
	c8.keypad.resetLatch()
	c8.screen.clear()

	// the font table always fits
	_ = c8.memory.load(int(FONTSET_START_ADDRESS), fontset[:])

	c8.programCounter = START_ADDRESS
}

// Load copies a program image into memory at START_ADDRESS. Program memory
// left over from an earlier image is zeroed first.
func (c8 *Chip8) Load(program []byte) error {
	if err := c8.memory.replace(int(START_ADDRESS), program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	c8.program = append([]byte(nil), program...)

	c8.logger.Info("program loaded", log.Int("size", len(program)), log.Hex("address", START_ADDRESS))

	return nil
}

// Reset puts the machine back into its power on state, with the last loaded
// program (if any) in memory again. Key states are kept, they belong to the
// host.
func (c8 *Chip8) Reset() {
	c8.initialise()
	if len(c8.program) > 0 {
		_ = c8.memory.load(int(START_ADDRESS), c8.program)
	}
}

/*
Step executes exactly one instruction:
- Fetch the two bytes at PC, most significant byte first
- Decode them into nibbles
- Execute the instruction and advance PC as the instruction requires

A returned error is always a *Fault. Once Step has failed the machine is
halted and every further call returns the same fault.
*/
func (c8 *Chip8) Step() error {
	if c8.fault != nil {
		return c8.fault
	}

	if f := c8.fetch(); f != nil {
		return c8.halt(f)
	}

	if c8.logger.Level() <= log.DebugLevel {
		c8.trace()
	}

	advance, f := c8.execute(Decode(c8.opcode))
	if f != nil {
		return c8.halt(f)
	}

	switch advance {
	case pcStep:
		c8.programCounter += 2
	case pcSkip:
		c8.programCounter += 4
	}

	return nil
}

func (c8 *Chip8) fetch() *Fault {
	pc := int(c8.programCounter)
	c8.opcode = 0
	if bad, ok := c8.memory.outside(pc, 2); ok {
		return c8.newFault(ErrAddressOverflow, bad)
	}
	c8.opcode = uint16(c8.memory[pc])<<8 | uint16(c8.memory[pc+1])
	return nil
}

// trace logs the fetched instruction. The rom offset is only meaningful
// for code in the program area.
func (c8 *Chip8) trace() {
	fields := []log.Field{
		log.Hex("opcode", c8.opcode),
		log.Hex("pc", c8.programCounter),
	}
	if c8.programCounter >= START_ADDRESS {
		fields = append(fields, log.Hex("rom", c8.programCounter-START_ADDRESS))
	}
	fields = append(fields, log.String("instr", Disassemble(c8.opcode)))
	c8.logger.Debug("executing", fields...)
}

func (c8 *Chip8) halt(f *Fault) *Fault {
	c8.fault = f
	c8.logger.Error("machine halted", log.Err(f))
	return f
}

// newFault builds a fault for the instruction being executed. address is
// ignored for fault kinds that aren't about memory.
func (c8 *Chip8) newFault(kind error, address int) *Fault {
	f := &Fault{
		Err:     kind,
		PC:      c8.programCounter,
		Opcode:  c8.opcode,
		Address: -1,
	}
	if kind == ErrAddressOverflow {
		f.Address = address
	}
	return f
}

// Tick decrements the delay and sound timers. A halted machine doesn't tick.
func (c8 *Chip8) Tick() {
	if c8.fault != nil {
		return
	}
	c8.timers.tick()
}

// ToneEnabled is true while the sound timer is running.
func (c8 *Chip8) ToneEnabled() bool {
	return c8.timers.sound > 0
}

// Halted returns the fault that stopped the machine, or nil.
func (c8 *Chip8) Halted() error {
	if c8.fault == nil {
		return nil
	}
	return c8.fault
}

func (c8 *Chip8) FrameBuffer() *FrameBuffer {
	return &c8.screen
}

func (c8 *Chip8) Keys() *Keypad {
	return &c8.keypad
}

func (c8 *Chip8) PC() uint16 {
	return c8.programCounter
}

func (c8 *Chip8) I() uint16 {
	return c8.indexRegister
}

// V returns general register x. Only the low nibble of x is used.
func (c8 *Chip8) V(x int) byte {
	return c8.registers[x&0xF]
}

func (c8 *Chip8) DelayTimer() byte {
	return c8.timers.delay
}

func (c8 *Chip8) SoundTimer() byte {
	return c8.timers.sound
}

func (c8 *Chip8) StackDepth() int {
	return int(c8.stackPointer)
}

// ReadMemory returns the byte at addr.
func (c8 *Chip8) ReadMemory(addr int) (byte, error) {
	return c8.memory.read(addr)
}

// String summarises the registers, for fault reports.
func (c8 *Chip8) String() string {
	s := fmt.Sprintf("PC=%03X I=%04X SP=%d DT=%02X ST=%02X", c8.programCounter, c8.indexRegister,
		c8.stackPointer, c8.timers.delay, c8.timers.sound)
	for x, v := range c8.registers {
		s += fmt.Sprintf(" V%X=%02X", x, v)
	}
	return s
}

